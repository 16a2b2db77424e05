package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/projection"
	"github.com/oderahub/stackpledge/types"
)

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("неверный номер обязательства: %q", s)
	}
	return id, nil
}

// loadCommitment fetches a record and projects it for the connected user.
func (e *env) loadCommitment(ctx context.Context, id uint64) (types.Commitment, projection.View, error) {
	st := ledger.CommitmentResource(e.gateway, id).Refetch(ctx)
	if st.Err != "" {
		return types.Commitment{}, projection.View{}, errors.New(st.Err)
	}
	if st.Value == nil {
		return types.Commitment{}, projection.View{}, fmt.Errorf("commitment #%d not found", id)
	}

	h, err := e.gateway.GetCurrentBlockHeight(ctx)
	haveHeight := err == nil
	if err != nil {
		e.console.Warnln("высота блока неизвестна:", err)
	}
	user, err := e.currentUser()
	if err != nil {
		e.console.Warnln("сессия не прочитана:", err)
	}
	return *st.Value, projection.Project(*st.Value, h, haveHeight, user), nil
}

var commitmentCmd = &cobra.Command{
	Use:   "commitment <id>",
	Short: "Показать обязательство и доступные действия",
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
		c, view, err := e.loadCommitment(cmd.Context(), id)
		if err != nil {
			return err
		}
		printCommitment(cmd.OutOrStdout(), c, view, e.config.Explorer())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitmentCmd)
}
