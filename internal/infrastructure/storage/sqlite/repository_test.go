package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/server/config"
	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/product"
	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/domain/user"
	"recordkeeper/internal/infrastructure/migration"
	"recordkeeper/internal/infrastructure/storage"
	"recordkeeper/internal/infrastructure/storage/storagetest"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.db")
	cfg := &config.Config{DB: config.DB{Driver: config.DriverSQLite, DatabaseURI: path}}
	require.NoError(t, migration.NewMigration(cfg, nil).Up())

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func subject[T any](table storage.Table[T]) storagetest.Subject[T] {
	return func(t *testing.T) record.Repository[T] {
		return NewRepository(newStorage(t), table, discard)
	}
}

func TestRepository(t *testing.T) {
	storagetest.RunAll(t,
		subject[user.User](storage.Users),
		subject[book.Book](storage.Books),
		subject[product.Product](storage.Products),
	)
}

func TestStorage_Ping(t *testing.T) {
	s := newStorage(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestRepository_conflictField(t *testing.T) {
	repo := &Repository[user.User]{table: storage.Users}

	tests := []struct {
		msg      string
		expected string
	}{
		{msg: "UNIQUE constraint failed: users.email", expected: "email"},
		{msg: "UNIQUE constraint failed: users.phone_number", expected: "phone_number"},
		{msg: "UNIQUE constraint failed: users.first_name, users.last_name", expected: ""},
		{msg: "database is locked", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.expected, repo.conflictField(tt.msg))
		})
	}
}
