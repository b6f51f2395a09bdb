package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/infrastructure/storage"
)

const uniqueViolation = "23505"

// Repository stores records of one kind in a postgres table.
type Repository[T any] struct {
	pool    *pgxpool.Pool
	table   storage.Table[T]
	queries storage.Queries
	log     *slog.Logger
}

func NewRepository[T any](s *Storage, table storage.Table[T], log *slog.Logger) *Repository[T] {
	return &Repository[T]{
		pool:    s.Pool(),
		table:   table,
		queries: storage.BuildQueries(table, placeholder),
		log:     log.With("component", "postgres_repository", "table", table.Name),
	}
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.pool.Query(ctx, r.queries.List)
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
	return r.scanOne(r.pool.QueryRow(ctx, r.queries.Latest), "latest record")
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.scanOne(r.pool.QueryRow(ctx, r.queries.Get, id), "get record")
}

func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	row := r.pool.QueryRow(ctx, r.queries.Insert, r.table.Fields(&rec)...)
	return r.scanOne(row, "create record")
}

func (r *Repository[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	args := append(r.table.Fields(&rec), id)
	return r.scanOne(r.pool.QueryRow(ctx, r.queries.Update, args...), "update record")
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, r.queries.Delete, id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) scanOne(row pgx.Row, op string) (T, error) {
	var rec T
	err := row.Scan(r.table.Dest(&rec)...)
	if err == nil {
		return rec, nil
	}

	var zero T
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, record.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return zero, &record.ConflictError{Field: r.conflictField(pgErr.ConstraintName)}
	}

	r.log.Error("failed to "+op, "error", err)
	return zero, fmt.Errorf("%s: %w", op, err)
}

// conflictField recovers the column from a "<table>_<column>_key" constraint.
func (r *Repository[T]) conflictField(constraint string) string {
	column := strings.TrimSuffix(strings.TrimPrefix(constraint, r.table.Name+"_"), "_key")
	if r.table.IsUnique(column) {
		return column
	}
	return ""
}
