package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/ledger"
	"github.com/oderahub/stackpledge/units"
)

var watchHeightCmd = &cobra.Command{
	Use:   "watch-height",
	Short: "Следить за высотой блока до Ctrl+C",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		watcher := ledger.NewHeightWatcher(e.gateway, e.config.Poll.BlockHeightInterval, e.logger)
		sub := watcher.Acquire()
		defer sub.Release()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		e.console.Infof("Опрос %s каждые %s", e.network.APIURL, e.config.Poll.BlockHeightInterval)
		for {
			select {
			case h := <-sub.Updates():
				fmt.Fprintf(cmd.OutOrStdout(), "block %s\n", units.FormatBlock(h))
			case <-sigCh:
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchHeightCmd)
}
