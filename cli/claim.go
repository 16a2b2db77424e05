package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/tx"
)

var claimForce bool

var claimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Вернуть ставку успешного обязательства",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := loadEnv()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		c, view, err := e.loadCommitment(ctx, id)
		if err != nil {
			return err
		}
		if !view.MayClaim && !claimForce {
			return fmt.Errorf("commitment #%d cannot be claimed by you (status %s, creator: %t)", id, c.Status, view.IsCreator)
		}

		ctl := tx.NewClaim(e.txTarget(cmd), func(string) {
			if c, v, err := e.loadCommitment(ctx, id); err == nil {
				printCommitment(cmd.OutOrStdout(), c, v, e.config.Explorer())
			}
		})
		return e.report(cmd, ctl.Execute(ctx, tx.ClaimParams{CommitmentID: id}))
	},
}

func init() {
	claimCmd.Flags().BoolVar(&claimForce, "force", false, "Отправить, даже если проверка прав не прошла")
	rootCmd.AddCommand(claimCmd)
}
