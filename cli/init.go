package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/cfg"
	"github.com/oderahub/stackpledge/types"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [mainnet|testnet]",
	Short: "Создать конфигурационный файл по умолчанию",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := cfg.DefaultConfig()
		if len(args) == 1 {
			network, err := types.NetworkByName(args[0])
			if err != nil {
				return err
			}
			config.Network = network.Name
			config.APIURL = network.APIURL
		}

		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("файл %s уже существует, используй --force для перезаписи", configPath)
		}
		if err := cfg.WriteConfig(config, configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s (%s)\n", configPath, config.Network)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Перезаписать существующий файл")
	rootCmd.AddCommand(initCmd)
}
