package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var data string

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать запись",
	Long: `Создание записи из JSON документа.

Документ передается флагом --data или через stdin:
  recordctl record create -k users --data '{"first_name":"Ann","last_name":"Lee","email":"ann@example.com","phone_number":"+123","salary":10}'
  cat book.json | recordctl record create -k books`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		body, err := readData(cmd.InOrStdin())
		if err != nil {
			return err
		}

		rec, err := app.CreateRecord(cmd.Context(), kind, body)
		if err != nil {
			return fmt.Errorf("ошибка создания записи: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Запись создана")
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Обновить запись",
	Long:  `Перезаписывает все изменяемые поля записи значениями из JSON документа (--data или stdin).`,
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
		body, err := readData(cmd.InOrStdin())
		if err != nil {
			return err
		}

		rec, err := app.UpdateRecord(cmd.Context(), kind, id, body)
		if err != nil {
			return fmt.Errorf("ошибка обновления записи: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Запись обновлена")
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

func readData(stdin io.Reader) (json.RawMessage, error) {
	raw := []byte(data)
	if data == "" {
		var err error
		raw, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения stdin: %w", err)
		}
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("данные записи должны быть JSON объектом")
	}
	return trimmed, nil
}

func init() {
	CreateCmd.Flags().StringVarP(&data, "data", "d", "", "JSON документ записи")
	UpdateCmd.Flags().StringVarP(&data, "data", "d", "", "JSON документ записи")
}
