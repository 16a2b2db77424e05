package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/tx"
)

var pledgeForm tx.PledgeForm

var pledgeCmd = &cobra.Command{
	Use:   "pledge",
	Short: "Создать обязательство со ставкой",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		user, err := e.currentUser()
		if err != nil {
			return err
		}
		if user == "" {
			return fmt.Errorf("кошелёк не подключён: выполни stackpledge connect")
		}

		params, err := tx.ParsePledgeForm(pledgeForm, e.network)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		ctl := tx.NewPledge(e.txTarget(cmd), func(string) {
			refreshStats(ctx, cmd, e, user)
		})
		return e.report(cmd, ctl.Execute(ctx, params))
	},
}

// refreshStats re-reads the stats a new pledge changes. The pledge itself is
// only broadcast at this point, so the numbers may not include it yet.
func refreshStats(ctx context.Context, cmd *cobra.Command, e *env, user string) {
	out := cmd.OutOrStdout()
	if gs, err := e.gateway.GetGlobalStats(ctx); err == nil {
		printGlobalStats(out, gs)
	} else {
		e.console.Warnln("статистика не обновлена:", err)
	}
	if us, err := e.gateway.GetUserStats(ctx, user); err == nil {
		printUserStats(out, user, us)
	} else {
		e.console.Warnln("статистика не обновлена:", err)
	}
}

func init() {
	f := pledgeCmd.Flags()
	f.StringVar(&pledgeForm.Description, "description", "", "Описание обязательства (до 256 символов)")
	f.StringVar(&pledgeForm.Judge, "judge", "", "Адрес судьи")
	f.StringVar(&pledgeForm.DeadlineDays, "days", "7", "Срок в днях")
	f.StringVar(&pledgeForm.Stake, "stake", "", "Ставка в STX")
	rootCmd.AddCommand(pledgeCmd)
}
