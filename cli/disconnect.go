package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Отключить кошелёк и забыть сохранённые адреса",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		session, closeSession, err := e.openSession(nil)
		if err != nil {
			return err
		}
		defer closeSession()

		if err := session.Disconnect(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Disconnected")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
