package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"recordkeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var (
	kind   string
	format string
)

// RecordCmd - родительская команда для всех операций с записями
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Управление записями",
	Long: `Создание, просмотр, обновление и удаление записей.

Вид записей задается флагом --kind: users, books или products.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный ID записи %q", arg)
	}
	return id, nil
}

func printRecords(w io.Writer, records []client.Record) error {
	if format == "json" {
		return printJSON(w, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "Записи не найдены")
		return nil
	}
	if err := printTable(w, records); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nВсего записей: %d\n", len(records))
	return nil
}

func printRecord(w io.Writer, rec client.Record) error {
	if format == "json" {
		return printJSON(w, rec)
	}
	return printTable(w, []client.Record{rec})
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printTable(out io.Writer, records []client.Record) error {
	columns := client.Columns(kind)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range columns {
		fmt.Fprintf(w, "%s\t", c)
	}
	fmt.Fprintln(w)

	for _, rec := range records {
		for _, c := range columns {
			fmt.Fprintf(w, "%s\t", truncate(cell(rec[c]), 40))
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

// cell renders JSON numbers without exponent notation.
func cell(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	RecordCmd.PersistentFlags().StringVarP(&kind, "kind", "k", "users", "вид записей (users, books, products)")
	RecordCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "формат вывода (table, json)")

	RecordCmd.AddCommand(ListCmd, GetCmd, LatestCmd, CreateCmd, UpdateCmd, DeleteCmd)
}
