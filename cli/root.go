package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oderahub/stackpledge/cfg"
)

var configPath string
var sessionPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", cfg.DefaultConfigPath, "Путь к конфигурационному файлу")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Путь к базе сессии BadgerDB (по умолчанию из конфигурации)")
}

var rootCmd = &cobra.Command{
	Use:           "stackpledge",
	Short:         "Клиент контракта обязательств stake-pledge в сети Stacks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка: %v\n", err)
		os.Exit(1)
	}
}
