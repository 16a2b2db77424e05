package types

import "fmt"

// Network describes the per-chain conventions the client depends on.
type Network struct {
	Name            string
	APIURL          string
	Symbol          string   // chain symbol wallets tag addresses with
	PreferredPrefix string   // single-sig prefix of "the user" on this network
	AccountPrefixes []string // prefixes accepted for judge addresses
}

var (
	Mainnet = Network{
		Name:            "mainnet",
		APIURL:          "https://api.mainnet.hiro.so",
		Symbol:          "STX",
		PreferredPrefix: "SP",
		AccountPrefixes: []string{"SP", "SM"},
	}
	Testnet = Network{
		Name:            "testnet",
		APIURL:          "https://api.testnet.hiro.so",
		Symbol:          "STX",
		PreferredPrefix: "ST",
		AccountPrefixes: []string{"ST", "SN"},
	}
)

// NetworkByName returns the preset for "mainnet" or "testnet".
func NetworkByName(name string) (Network, error) {
	switch name {
	case Mainnet.Name:
		return Mainnet, nil
	case Testnet.Name:
		return Testnet, nil
	}
	return Network{}, fmt.Errorf("unknown network %q", name)
}
