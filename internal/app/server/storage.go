package server

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/server/api"
	"recordkeeper/internal/app/server/config"
	"recordkeeper/internal/infrastructure/storage"
	"recordkeeper/internal/infrastructure/storage/boltdb"
	"recordkeeper/internal/infrastructure/storage/postgres"
	"recordkeeper/internal/infrastructure/storage/sqlite"
)

// OpenStorage opens the configured backend and builds one repository per
// record kind on top of it. The caller closes the returned Storage.
func OpenStorage(ctx context.Context, db config.DB, log *slog.Logger) (storage.Storage, api.Repositories, error) {
	switch db.Driver {
	case config.DriverPostgres:
		s, err := postgres.New(ctx, db.DatabaseURI)
		if err != nil {
			return nil, api.Repositories{}, fmt.Errorf("postgres: %w", err)
		}
		return s, api.Repositories{
			Users:    postgres.NewRepository(s, storage.Users, log),
			Books:    postgres.NewRepository(s, storage.Books, log),
			Products: postgres.NewRepository(s, storage.Products, log),
		}, nil

	case config.DriverSQLite:
		s, err := sqlite.New(ctx, db.DatabaseURI)
		if err != nil {
			return nil, api.Repositories{}, fmt.Errorf("sqlite: %w", err)
		}
		return s, api.Repositories{
			Users:    sqlite.NewRepository(s, storage.Users, log),
			Books:    sqlite.NewRepository(s, storage.Books, log),
			Products: sqlite.NewRepository(s, storage.Products, log),
		}, nil

	case config.DriverBolt:
		s, err := boltdb.New(ctx, db.DatabaseURI)
		if err != nil {
			return nil, api.Repositories{}, fmt.Errorf("bolt: %w", err)
		}
		return s, api.Repositories{
			Users:    boltdb.NewRepository(s, storage.Users, log),
			Books:    boltdb.NewRepository(s, storage.Books, log),
			Products: boltdb.NewRepository(s, storage.Products, log),
		}, nil
	}

	return nil, api.Repositories{}, fmt.Errorf("unknown database driver %q", db.Driver)
}
