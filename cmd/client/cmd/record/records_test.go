package record

import (
	"bytes"
	"strings"
	"testing"

	"recordkeeper/internal/app/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "9000000000", want: 9000000000},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintRecords_Table(t *testing.T) {
	kind, format = "products", "table"

	var buf bytes.Buffer
	err := printRecords(&buf, []client.Record{
		{"id": float64(1), "name": "Lamp", "description": strings.Repeat("x", 60), "price": float64(1999)},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"id", "name", "description", "price"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Lamp", strings.Repeat("x", 37) + "...", "1999"}, strings.Fields(lines[1]))
	assert.Contains(t, buf.String(), "Всего записей: 1")
}

func TestPrintRecords_Empty(t *testing.T) {
	kind, format = "users", "table"

	var buf bytes.Buffer
	require.NoError(t, printRecords(&buf, nil))
	assert.Equal(t, "Записи не найдены\n", buf.String())
}

func TestPrintRecord_JSON(t *testing.T) {
	kind, format = "users", "json"
	t.Cleanup(func() { format = "table" })

	var buf bytes.Buffer
	require.NoError(t, printRecord(&buf, client.Record{"id": float64(3), "salary": 10.5}))
	assert.JSONEq(t, `{"id":3,"salary":10.5}`, buf.String())
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", cell(nil))
	assert.Equal(t, "1200000", cell(float64(1200000)))
	assert.Equal(t, "10.25", cell(10.25))
	assert.Equal(t, "Ann", cell("Ann"))
}

func TestReadData(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "flag", flag: `{"name":"Lamp"}`, want: `{"name":"Lamp"}`},
		{name: "stdin", stdin: " {\"price\":1}\n", want: `{"price":1}`},
		{name: "string", flag: `"x"`, wantErr: true},
		{name: "number", flag: `1`, wantErr: true},
		{name: "array", flag: `[{"name":"Lamp"}]`, wantErr: true},
		{name: "broken", flag: `{"name":`, wantErr: true},
		{name: "empty stdin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data = tt.flag
			t.Cleanup(func() { data = "" })

			got, err := readData(strings.NewReader(tt.stdin))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "JSON объектом")
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
