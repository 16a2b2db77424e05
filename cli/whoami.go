package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/projection"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать подключённый адрес",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		addr, err := e.currentUser()
		if err != nil {
			return err
		}
		if addr == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not connected")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", addr, projection.ShortenAddress(addr, 4), e.config.Explorer().AddressURL(addr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
