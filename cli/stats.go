package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/ledger"
)

var statsCmd = &cobra.Command{
	Use:   "stats [address]",
	Short: "Статистика платформы и пользователя",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		global := ledger.GlobalStatsResource(e.gateway).Refetch(cmd.Context())
		if global.Err != "" {
			return errors.New(global.Err)
		}
		printGlobalStats(out, global.Value)

		var address string
		if len(args) == 1 {
			address = args[0]
		} else if address, err = e.currentUser(); err != nil {
			e.console.Warnln("сессия не прочитана:", err)
		}
		if address == "" {
			return nil
		}

		user := ledger.UserStatsResource(e.gateway, address).Refetch(cmd.Context())
		if user.Err != "" {
			return errors.New(user.Err)
		}
		printUserStats(out, address, user.Value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
