package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/tx"
)

func parseVerdict(s string) (bool, error) {
	switch s {
	case "success":
		return true, nil
	case "failure":
		return false, nil
	}
	return false, fmt.Errorf("вердикт должен быть success или failure, получено %q", s)
}

var judgeForce bool

var judgeCmd = &cobra.Command{
	Use:   "judge <id> success|failure",
	Short: "Вынести вердикт по обязательству",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		success, err := parseVerdict(args[1])
		if err != nil {
			return err
		}
		e, err := loadEnv()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, view, err := e.loadCommitment(ctx, id)
		if err != nil {
			return err
		}
		if !view.MayJudge && !judgeForce {
			return fmt.Errorf("commitment #%d cannot be judged by you now (judge: %t, expired: %t)", id, view.IsJudge, view.IsExpired)
		}

		ctl := tx.NewJudge(e.txTarget(cmd), func(string) {
			if c, v, err := e.loadCommitment(ctx, id); err == nil {
				printCommitment(cmd.OutOrStdout(), c, v, e.config.Explorer())
			}
		})
		return e.report(cmd, ctl.Execute(ctx, tx.JudgeParams{CommitmentID: id, Success: success}))
	},
}

func init() {
	judgeCmd.Flags().BoolVar(&judgeForce, "force", false, "Отправить, даже если проверка прав не прошла")
	rootCmd.AddCommand(judgeCmd)
}
