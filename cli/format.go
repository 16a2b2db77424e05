package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/oderahub/stackpledge/projection"
	"github.com/oderahub/stackpledge/types"
	"github.com/oderahub/stackpledge/units"
)

func you(flag bool) string {
	if flag {
		return " (you)"
	}
	return ""
}

func printCommitment(w io.Writer, c types.Commitment, v projection.View, explorer projection.Explorer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Commitment\t#%d\n", c.ID)
	fmt.Fprintf(tw, "Status\t%s\n", c.Status)
	fmt.Fprintf(tw, "Description\t%s\n", c.Description)
	fmt.Fprintf(tw, "Stake\t%s STX\n", units.ToDisplayAmount(c.StakeAmount))
	fmt.Fprintf(tw, "Deadline\t%s (block %s)\n", v.Deadline(c), units.FormatBlock(c.DeadlineBlock))
	fmt.Fprintf(tw, "Creator\t%s%s\t%s\n", projection.ShortenAddress(c.Creator, 6), you(v.IsCreator), explorer.AddressURL(c.Creator))
	fmt.Fprintf(tw, "Judge\t%s%s\t%s\n", projection.ShortenAddress(c.Judge, 6), you(v.IsJudge), explorer.AddressURL(c.Judge))
	_ = tw.Flush()

	if n := v.Notice(c); n != "" {
		fmt.Fprintf(w, "\n%s\n", n)
	}
	if v.MayJudge {
		fmt.Fprintf(w, "\nYou are the judge: stackpledge judge %d success|failure\n", c.ID)
	}
	if v.MayClaim {
		fmt.Fprintf(w, "\nYour stake can be claimed: stackpledge claim %d\n", c.ID)
	}
}

func printRecent(w io.Writer, list []types.Commitment) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No commitments yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSTAKE\tDEADLINE\tCREATOR\tDESCRIPTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s STX\t%s\t%s\t%s\n", c.ID, c.Status, units.ToDisplayAmount(c.StakeAmount),
			units.FormatBlock(c.DeadlineBlock), projection.ShortenAddress(c.Creator, 4), c.Description)
	}
	_ = tw.Flush()
}

func printUserStats(w io.Writer, address string, s *types.UserStats) {
	if s == nil {
		fmt.Fprintf(w, "%s has no commitments\n", address)
		return
	}
	fmt.Fprintf(w, "%s: %d commitments (%d successful, %d failed), %s STX staked\n", address,
		s.TotalCommitments, s.SuccessfulCommitments, s.FailedCommitments, units.ToDisplayAmount(s.TotalStaked))
}

func printGlobalStats(w io.Writer, s types.GlobalStats) {
	fmt.Fprintf(w, "Platform: %d commitments, %s STX staked, %s STX burned\n",
		s.TotalCommitments, units.ToDisplayAmount(s.TotalStaked), units.ToDisplayAmount(s.TotalBurned))
}
