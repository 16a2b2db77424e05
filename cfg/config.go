// Package cfg reads and writes the TOML configuration file.
package cfg

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/projection"
	"github.com/oderahub/stackpledge/types"
)

const (
	DefaultConfigPath      = "./config/config.toml"
	DefaultContractAddress = "SP2FY55DK4NESNH6E5CJSNZP2CQ5PZ5BX64B29FYG"
	DefaultContractName    = "stake-pledge"
)

type ContractConfig struct {
	Address string `mapstructure:"address"`
	Name    string `mapstructure:"name"`
}

type WalletConfig struct {
	BridgeURL string `mapstructure:"bridge_url"`
	SessionDB string `mapstructure:"session_db"`
	// Confirm asks on the terminal before each signing request.
	Confirm   bool   `mapstructure:"confirm"`
}

type PollConfig struct {
	BlockHeightInterval time.Duration `mapstructure:"block_height_interval"`
}

type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

type Config struct {
	Network string `mapstructure:"network"`
	APIURL  string `mapstructure:"api_url"`

	// APICandidates are alternative nodes; with AutoSelectNode the fastest
	// online one among them and APIURL is used.
	APICandidates  []string `mapstructure:"api_candidates"`
	AutoSelectNode bool     `mapstructure:"auto_select_node"`

	ExplorerURL string         `mapstructure:"explorer_url"`
	LogLevel    string         `mapstructure:"log_level"`
	LogFormat   string         `mapstructure:"log_format"`
	Contract    ContractConfig `mapstructure:"contract"`
	Wallet      WalletConfig   `mapstructure:"wallet"`
	Poll        PollConfig     `mapstructure:"poll"`
	API         APIConfig      `mapstructure:"api"`
}

func DefaultConfig() *Config {
	return &Config{
		Network:     types.Mainnet.Name,
		APIURL:      types.Mainnet.APIURL,
		ExplorerURL: projection.DefaultExplorerURL,
		LogLevel:    "info",
		LogFormat:   "plain",
		Contract: ContractConfig{
			Address: DefaultContractAddress,
			Name:    DefaultContractName,
		},
		Wallet: WalletConfig{
			BridgeURL: "http://127.0.0.1:5151",
			SessionDB: "./data/session",
			Confirm:   true,
		},
		Poll: PollConfig{BlockHeightInterval: ledger.DefaultPollInterval},
		API:  APIConfig{Listen: "127.0.0.1:8080"},
	}
}

func LoadViperConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper read config: %w", err)
	}
	return v, nil
}

// ReadConfig loads path over the defaults and validates the result.
func ReadConfig(path string) (*Config, error) {
	v, err := LoadViperConfig(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("viper unmarshal: %w", err)
	}
	if err := config.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("config invalid: %w", err)
	}
	return config, nil
}

// WriteConfig stores config at path, creating the directory.
func WriteConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("network", config.Network)
	v.Set("api_url", config.APIURL)
	v.Set("api_candidates", config.APICandidates)
	v.Set("auto_select_node", config.AutoSelectNode)
	v.Set("explorer_url", config.ExplorerURL)
	v.Set("log_level", config.LogLevel)
	v.Set("log_format", config.LogFormat)
	v.Set("contract", map[string]any{
		"address": config.Contract.Address,
		"name":    config.Contract.Name,
	})
	v.Set("wallet", map[string]any{
		"bridge_url": config.Wallet.BridgeURL,
		"session_db": config.Wallet.SessionDB,
		"confirm":    config.Wallet.Confirm,
	})
	v.Set("poll", map[string]any{
		"block_height_interval": config.Poll.BlockHeightInterval.String(),
	})
	v.Set("api", map[string]any{
		"listen": config.API.Listen,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) ValidateBasic() error {
	if _, err := types.NetworkByName(c.Network); err != nil {
		return err
	}
	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if _, err := clarity.ParsePrincipal(c.Contract.Address); err != nil {
		return fmt.Errorf("contract.address: %w", err)
	}
	for _, u := range c.APICandidates {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("api_candidates: %w", err)
		}
	}
	if c.Contract.Name == "" {
		return errors.New("contract.name is empty")
	}
	if c.Poll.BlockHeightInterval <= 0 {
		return errors.New("poll.block_height_interval must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	return nil
}

// NetworkPreset returns the network conventions with the configured API URL.
func (c *Config) NetworkPreset() types.Network {
	n, err := types.NetworkByName(c.Network)
	if err != nil {
		n = types.Mainnet
	}
	if c.APIURL != "" {
		n.APIURL = c.APIURL
	}
	return n
}

// NodeURLs lists APIURL followed by the candidates, without duplicates.
func (c *Config) NodeURLs() []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range append([]string{c.APIURL}, c.APICandidates...) {
		if u != "" && !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

func (c *Config) LedgerContract() ledger.Contract {
	return ledger.Contract{Address: c.Contract.Address, Name: c.Contract.Name}
}

func (c *Config) Explorer() projection.Explorer {
	return projection.Explorer{BaseURL: c.ExplorerURL, Network: c.Network}
}

// NewLogger builds the structured logger every library package receives.
func (c *Config) NewLogger(w io.Writer) (log.Logger, error) {
	var logger log.Logger
	if c.LogFormat == "json" {
		logger = log.NewTMJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewTMLogger(log.NewSyncWriter(w))
	}
	switch c.LogLevel {
	case "debug":
		return log.NewFilter(logger, log.AllowDebug()), nil
	case "info":
		return log.NewFilter(logger, log.AllowInfo()), nil
	case "error":
		return log.NewFilter(logger, log.AllowError()), nil
	}
	return nil, fmt.Errorf("unknown log level %q", c.LogLevel)
}
