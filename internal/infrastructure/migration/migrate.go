package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers used for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"recordkeeper/internal/app/server/config"
)

//go:embed sql
var migrations embed.FS

// Migrator: интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine: фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(dialect, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

// DefaultEngine: реальная реализация, SQL берется из встроенной ФС
func DefaultEngine(dialect, databaseURL string) (Migrator, error) {
	src, err := iofs.New(migrations, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// Supported reports whether the configured driver has SQL migrations.
func (mg *Migration) Supported() bool {
	switch mg.cfg.DB.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		return true
	}
	return false
}

func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() }, "up")
}

func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() }, "down")
}

func (mg *Migration) run(step func(Migrator) error, name string) (err error) {
	if !mg.Supported() {
		return fmt.Errorf("driver %q has no migrations", mg.cfg.DB.Driver)
	}

	m, err := mg.engine(mg.cfg.DB.Driver, databaseURL(mg.cfg.DB))
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	return nil
}

// databaseURL turns the configured URI into a migrate database URL.
func databaseURL(db config.DB) string {
	if db.Driver == config.DriverSQLite {
		return "sqlite3://" + db.DatabaseURI
	}
	return db.DatabaseURI
}
