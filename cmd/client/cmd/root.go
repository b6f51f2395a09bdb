// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"recordkeeper/cmd/client/cmd/record"
	"recordkeeper/internal/app/client"
	"recordkeeper/internal/app/client/config"
	"recordkeeper/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "recordctl",
	Short: "recordctl - клиент REST сервиса Recordkeeper",
	Long: `recordctl управляет записями сервиса Recordkeeper:
пользователями (users), книгами (books) и товарами (products).

Адрес сервера берется из SERVER_ADDRESS или флага --server.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log := logger.NewWithLevel(cfg.Env, cfg.LogLevel)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func init() {
	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("server", "", "адрес сервера, например localhost:8080")
	flags.Bool("tls", false, "использовать https")
	flags.String("log-level", "", "уровень логирования (debug, info, warn, error)")

	for key, flag := range map[string]string{
		config.KeyServerAddress: "server",
		config.KeyEnableTLS:     "tls",
		config.KeyLogLevel:      "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(record.RecordCmd, pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить доступность сервера",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}
		if err := app.Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Сервер доступен")
		return nil
	},
}
