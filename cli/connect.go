package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/identity"
)

var connectAddresses string

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Подключить кошелёк и запомнить адрес пользователя",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		var connector identity.Connector
		if connectAddresses != "" {
			entries, err := identity.ParseEntries(connectAddresses)
			if err != nil {
				return err
			}
			connector = identity.StaticConnector(entries)
		}

		session, closeSession, err := e.openSession(connector)
		if err != nil {
			return err
		}
		defer closeSession()

		addr, err := session.Connect(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connected as %s\n", addr)
		return nil
	},
}

func init() {
	connectCmd.Flags().StringVar(&connectAddresses, "addresses", "",
		"Адреса кошелька вида SP...@STX,bc1...@BTC вместо запроса к мосту кошелька")
	rootCmd.AddCommand(connectCmd)
}
