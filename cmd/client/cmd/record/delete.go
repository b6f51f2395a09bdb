package record

import (
	"fmt"

	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить запись",
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

		if err := app.DeleteRecord(cmd.Context(), kind, id); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Запись %d удалена\n", id)
		return nil
	},
}
