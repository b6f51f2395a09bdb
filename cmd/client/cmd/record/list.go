// cmd/client/cmd/record/list.go
package record

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long:  `Просмотр всех записей выбранного вида в порядке возрастания ID.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		records, err := app.ListRecords(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		return printRecords(cmd.OutOrStdout(), records)
	},
}
