package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recordkeeper/internal/app/server"
	"recordkeeper/internal/app/server/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("ошибка инициализации сервера: %w", err)
		}

		if err := app.Run(ctx); err != nil {
			return fmt.Errorf("ошибка работы сервера: %w", err)
		}

		log.Info("server stopped")
		return nil
	},
}

func init() {
	flags := serveCmd.PersistentFlags()
	flags.StringP("address", "a", ":8080", "адрес HTTP сервера")
	flags.Bool("auto-migrate", true, "применять миграции при запуске")
	flags.Duration("shutdown-timeout", 15*time.Second, "время на завершение активных запросов")

	bindFlag(serveCmd, config.KeyRunAddress, "address")
	bindFlag(serveCmd, config.KeyAutoMigrate, "auto-migrate")
	bindFlag(serveCmd, config.KeyShutdownTimeout, "shutdown-timeout")
}
