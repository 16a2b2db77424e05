package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/api"
	"github.com/oderahub/stackpledge/ledger"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить JSON API только для чтения",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		listen := e.config.API.Listen
		if serveListen != "" {
			listen = serveListen
		}

		watcher := ledger.NewHeightWatcher(e.gateway, e.config.Poll.BlockHeightInterval, e.logger)
		sub := watcher.Acquire()
		defer sub.Release()

		srv := api.NewServer(e.gateway,
			api.WithHeights(sub),
			api.WithExplorer(e.config.Explorer()),
			api.WithLogger(e.logger),
		)
		httpSrv := &http.Server{
			Addr:              listen,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			e.console.Infof("API слушает на %s", listen)
			errCh <- httpSrv.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh: // ждём SIGINT/SIGTERM
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Адрес для прослушивания (по умолчанию из конфигурации)")
	rootCmd.AddCommand(serveCmd)
}
