package record

import (
	"fmt"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Получить запись по ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		rec, err := app.GetRecord(cmd.Context(), kind, id)
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		return printRecord(cmd.OutOrStdout(), rec)
	},
}

var LatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Последняя созданная запись",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		rec, err := app.LatestRecord(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		return printRecord(cmd.OutOrStdout(), rec)
	},
}
