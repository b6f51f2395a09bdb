package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recordkeeper/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление схемой базы данных",
	Long: `Применение и откат встроенных SQL миграций для sqlite и postgres.
Хранилищу bolt миграции не нужны.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg, nil).Up(); err != nil {
			return fmt.Errorf("ошибка применения миграций: %w", err)
		}
		log.Info("migrations applied", "driver", cfg.DB.Driver)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg, nil).Down(); err != nil {
			return fmt.Errorf("ошибка отката миграций: %w", err)
		}
		log.Info("migrations rolled back", "driver", cfg.DB.Driver)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
