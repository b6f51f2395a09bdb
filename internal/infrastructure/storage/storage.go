package storage

import (
	"context"
	"fmt"
	"strings"
)

// Storage is an opened backend handle. It is created once at startup and
// closed on shutdown.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error
}

// Table maps a record type onto one table (or bucket).
type Table[T any] struct {
	Name    string
	Columns []string // every column except id, in Fields order
	Unique  []string // columns carrying a unique index
	ID      func(rec *T) *int64
	Fields  func(rec *T) []any // pointers into rec, one per column
}

// Dest returns scan destinations for "id, columns...".
func (t Table[T]) Dest(rec *T) []any {
	return append([]any{t.ID(rec)}, t.Fields(rec)...)
}

// IsUnique reports whether column carries a unique index.
func (t Table[T]) IsUnique(column string) bool {
	for _, c := range t.Unique {
		if c == column {
			return true
		}
	}
	return false
}

// ConstraintName is the name migrations give the unique index on column.
func (t Table[T]) ConstraintName(column string) string {
	return t.Name + "_" + column + "_key"
}

// Queries holds the statements a SQL repository runs against one table.
type Queries struct {
	List   string
	Latest string
	Get    string
	Insert string
	Update string
	Delete string
}

// BuildQueries renders the CRUD statements for t. placeholder returns the
// dialect's bind marker for the n-th argument (1-based).
func BuildQueries[T any](t Table[T], placeholder func(n int) string) Queries {
	selectCols := "id, " + strings.Join(t.Columns, ", ")

	values := make([]string, len(t.Columns))
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = placeholder(i + 1)
		sets[i] = c + " = " + placeholder(i+1)
	}
	idArg := placeholder(len(t.Columns) + 1)

	return Queries{
		List:   fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, selectCols, t.Name),
		Latest: fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC LIMIT 1`, selectCols, t.Name),
		Get:    fmt.Sprintf(`SELECT %s FROM %s WHERE id = %s`, selectCols, t.Name, placeholder(1)),
		Insert: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			t.Name, strings.Join(t.Columns, ", "), strings.Join(values, ", "), selectCols),
		Update: fmt.Sprintf(`UPDATE %s SET %s WHERE id = %s RETURNING %s`,
			t.Name, strings.Join(sets, ", "), idArg, selectCols),
		Delete: fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, t.Name, placeholder(1)),
	}
}
