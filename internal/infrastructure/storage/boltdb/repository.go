package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/boltdb/bolt"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/infrastructure/storage"
)

// Repository stores records of one kind in a bolt bucket.
type Repository[T any] struct {
	db    *bolt.DB
	table storage.Table[T]
	log   *slog.Logger
}

func NewRepository[T any](s *Storage, table storage.Table[T], log *slog.Logger) *Repository[T] {
	return &Repository[T]{
		db:    s.DB(),
		table: table,
		log:   log.With("component", "bolt_repository", "table", table.Name),
	}
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []T
	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(r.table.Name))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, value []byte) error {
			rec, err := r.decode(value)
			if err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		r.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (r *Repository[T]) Latest(ctx context.Context) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(r.table.Name))
		if bucket == nil {
			return record.ErrNotFound
		}
		_, value := bucket.Cursor().Last()
		if value == nil {
			return record.ErrNotFound
		}
		var err error
		rec, err = r.decode(value)
		return err
	})
	return rec, r.wrap("latest record", err)
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		rec, err = r.get(tx.Bucket([]byte(r.table.Name)), id)
		return err
	})
	return rec, r.wrap("get record", err)
}

func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(r.table.Name))
		if err != nil {
			return err
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		*r.table.ID(&rec) = int64(seq)

		if err := r.index(tx, &rec, nil); err != nil {
			return err
		}
		return r.put(bucket, &rec)
	})
	if err != nil {
		var zero T
		return zero, r.wrap("create record", err)
	}
	return rec, nil
}

func (r *Repository[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(r.table.Name))
		current, err := r.get(bucket, id)
		if err != nil {
			return err
		}

		*r.table.ID(&rec) = id
		if err := r.index(tx, &rec, &current); err != nil {
			return err
		}
		return r.put(bucket, &rec)
	})
	if err != nil {
		var zero T
		return zero, r.wrap("update record", err)
	}
	return rec, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(r.table.Name))
		current, err := r.get(bucket, id)
		if err != nil {
			return err
		}

		if err := r.unindex(tx, &current); err != nil {
			return err
		}
		return bucket.Delete(key(id))
	})
	return r.wrap("delete record", err)
}

func (r *Repository[T]) get(bucket *bolt.Bucket, id int64) (T, error) {
	var rec T
	if bucket == nil {
		return rec, record.ErrNotFound
	}
	value := bucket.Get(key(id))
	if value == nil {
		return rec, record.ErrNotFound
	}
	return r.decode(value)
}

func (r *Repository[T]) put(bucket *bolt.Bucket, rec *T) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return bucket.Put(key(*r.table.ID(rec)), value)
}

func (r *Repository[T]) decode(value []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(value, &rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// index claims the unique values of rec, releasing those of previous.
// A value already owned by another record fails with a ConflictError and
// the surrounding transaction is rolled back.
func (r *Repository[T]) index(tx *bolt.Tx, rec, previous *T) error {
	owner := key(*r.table.ID(rec))
	next := r.uniqueValues(rec)

	var prev map[string][]byte
	if previous != nil {
		prev = r.uniqueValues(previous)
	}

	for _, column := range r.table.Unique {
		idx, err := tx.CreateBucketIfNotExists([]byte(r.table.ConstraintName(column)))
		if err != nil {
			return err
		}

		if got := idx.Get(next[column]); got != nil && !bytes.Equal(got, owner) {
			return &record.ConflictError{Field: column}
		}
		if old, ok := prev[column]; ok && !bytes.Equal(old, next[column]) {
			if err := idx.Delete(old); err != nil {
				return err
			}
		}
		if err := idx.Put(next[column], owner); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T]) unindex(tx *bolt.Tx, rec *T) error {
	for column, value := range r.uniqueValues(rec) {
		idx := tx.Bucket([]byte(r.table.ConstraintName(column)))
		if idx == nil {
			continue
		}
		if err := idx.Delete(value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T]) uniqueValues(rec *T) map[string][]byte {
	fields := r.table.Fields(rec)
	values := make(map[string][]byte, len(r.table.Unique))
	for i, column := range r.table.Columns {
		if r.table.IsUnique(column) {
			values[column] = indexKey(fields[i])
		}
	}
	return values
}

func (r *Repository[T]) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, record.ErrNotFound) || errors.Is(err, record.ErrConflict) {
		return err
	}
	r.log.Error("failed to "+op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func key(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// indexKey renders the value behind a Fields pointer. Bolt rejects empty
// keys, so every key carries a one byte prefix.
func indexKey(field any) []byte {
	var s string
	switch v := field.(type) {
	case *string:
		s = *v
	default:
		s = fmt.Sprint(reflect.ValueOf(field).Elem().Interface())
	}
	return append([]byte{'='}, s...)
}
