package cli

import (
	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/ledger"
)

var recentCount int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Последние обязательства",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		list, err := ledger.RecentCommitments(cmd.Context(), e.gateway, recentCount, e.logger)
		if err != nil {
			return err
		}
		printRecent(cmd.OutOrStdout(), list)
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVarP(&recentCount, "count", "n", ledger.DefaultRecent, "Сколько обязательств показать")
	rootCmd.AddCommand(recentCmd)
}
