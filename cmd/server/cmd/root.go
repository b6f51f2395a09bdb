package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/server/config"
	"recordkeeper/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recordkeeper",
	Short: "Recordkeeper - REST сервис хранения пользователей, книг и товаров",
	Long: `Recordkeeper хранит записи трех видов (users, books, products)
в sqlite, postgres или bolt и отдает их через JSON API.

Настройки читаются из .env, переменных окружения и флагов.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log = logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)
	return nil
}

// bindFlag makes a flag override the matching config key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("env", config.EnvLocal, "окружение (local, dev, prod)")
	flags.String("driver", config.DriverSQLite, "хранилище (sqlite, postgres, bolt)")
	flags.String("database-uri", "recordkeeper.db", "путь к файлу или DSN базы данных")
	flags.String("log-level", "", "уровень логирования (debug, info, warn, error)")

	bindFlag(rootCmd, config.KeyEnv, "env")
	bindFlag(rootCmd, config.KeyDatabaseDriver, "driver")
	bindFlag(rootCmd, config.KeyDatabaseURI, "database-uri")
	bindFlag(rootCmd, config.KeyLogLevel, "log-level")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}
