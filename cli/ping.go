package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/units"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверка подключения к узлам Stacks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		probes := ledger.ProbeNodes(cmd.Context(), e.config.NodeURLs(), ledger.DefaultProbeTimeout)
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NODE\tSTATUS\tLATENCY\tTIP")
		for _, p := range probes {
			if !p.Online {
				fmt.Fprintf(tw, "%s\toffline\t-\t%v\n", p.URL, p.Err)
				continue
			}
			fmt.Fprintf(tw, "%s\tonline\t%s\t%s\n", p.URL, p.Latency.Round(time.Millisecond), units.FormatBlock(p.Height))
		}
		_ = tw.Flush()

		if _, ok := ledger.ClosestNode(probes); !ok {
			return fmt.Errorf("ни один узел не доступен")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
