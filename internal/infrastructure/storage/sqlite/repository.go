package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/infrastructure/storage"
)

// Repository stores records of one kind in a sqlite table.
type Repository[T any] struct {
	db      *sql.DB
	table   storage.Table[T]
	queries storage.Queries
	log     *slog.Logger
}

func NewRepository[T any](s *Storage, table storage.Table[T], log *slog.Logger) *Repository[T] {
	return &Repository[T]{
		db:      s.DB(),
		table:   table,
		queries: storage.BuildQueries(table, func(int) string { return "?" }),
		log:     log.With("component", "sqlite_repository", "table", table.Name),
	}
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.List)
	if err != nil {
		r.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var rec T
		if err := rows.Scan(r.table.Dest(&rec)...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *Repository[T]) Latest(ctx context.Context) (T, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, r.queries.Latest), "latest record")
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, r.queries.Get, id), "get record")
}

func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	row := r.db.QueryRowContext(ctx, r.queries.Insert, r.table.Fields(&rec)...)
	return r.scanOne(row, "create record")
}

func (r *Repository[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	args := append(r.table.Fields(&rec), id)
	return r.scanOne(r.db.QueryRowContext(ctx, r.queries.Update, args...), "update record")
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.queries.Delete, id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) scanOne(row *sql.Row, op string) (T, error) {
	var rec T
	err := row.Scan(r.table.Dest(&rec)...)
	if err == nil {
		return rec, nil
	}

	var zero T
	if errors.Is(err, sql.ErrNoRows) {
		return zero, record.ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return zero, &record.ConflictError{Field: r.conflictField(sqliteErr.Error())}
	}

	r.log.Error("failed to "+op, "error", err)
	return zero, fmt.Errorf("%s: %w", op, err)
}

// conflictField parses "UNIQUE constraint failed: users.email".
func (r *Repository[T]) conflictField(msg string) string {
	_, cols, ok := strings.Cut(msg, "failed: ")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(cols, ",")
	column := strings.TrimPrefix(strings.TrimSpace(first), r.table.Name+".")
	if r.table.IsUnique(column) {
		return column
	}
	return ""
}
