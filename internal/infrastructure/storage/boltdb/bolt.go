package boltdb

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const openTimeout = time.Second

// Storage is a single-file key/value store. Every table is a bucket keyed
// by the big-endian record id; unique columns get an index bucket each.
type Storage struct {
	db *bolt.DB
}

func New(ctx context.Context, path string) (*Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(*bolt.Tx) error { return nil })
}

// Close releases the file lock.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *bolt.DB {
	return s.db
}
