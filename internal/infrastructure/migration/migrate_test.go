package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recordkeeper/internal/app/server/config"
)

// MockMigrator: мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Down() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func sqliteConfig(uri string) *config.Config {
	return &config.Config{DB: config.DB{Driver: config.DriverSQLite, DatabaseURI: uri}}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotDialect, gotURL string
	engine := func(dialect, db string) (Migrator, error) {
		gotDialect, gotURL = dialect, db
		return mockM, nil
	}

	mg := NewMigration(sqliteConfig("records.db"), engine)
	err := mg.Up()

	assert.NoError(t, err)
	assert.Equal(t, "sqlite", gotDialect)
	assert.Equal(t, "sqlite3://records.db", gotURL)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(string, string) (Migrator, error) {
		return mockM, nil
	}

	mg := NewMigration(sqliteConfig(""), engine)
	assert.NoError(t, mg.Up())
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(string, string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration(sqliteConfig(""), engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_CloseErrorsAreJoined(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("bad sql"))
	mockM.On("Close").Return(errors.New("source closed"), errors.New("db closed"))

	engine := func(string, string) (Migrator, error) { return mockM, nil }

	err := NewMigration(sqliteConfig(""), engine).Up()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration up: bad sql")
	assert.Contains(t, err.Error(), "migration source error: source closed")
	assert.Contains(t, err.Error(), "migration database error: db closed")
}

func TestMigration_PostgresURLPassedThrough(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Down").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotURL string
	engine := func(_ string, db string) (Migrator, error) {
		gotURL = db
		return mockM, nil
	}

	cfg := &config.Config{DB: config.DB{Driver: config.DriverPostgres, DatabaseURI: "postgres://u:p@localhost/records"}}
	require.NoError(t, NewMigration(cfg, engine).Down())
	assert.Equal(t, "postgres://u:p@localhost/records", gotURL)
}

func TestMigration_BoltUnsupported(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Driver: config.DriverBolt, DatabaseURI: "records.bolt"}}
	mg := NewMigration(cfg, nil)

	assert.False(t, mg.Supported())
	assert.Error(t, mg.Up())
}

func TestDefaultEngine_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	mg := NewMigration(sqliteConfig(path), nil)

	require.NoError(t, mg.Up())
	// второй прогон ничего не меняет
	require.NoError(t, mg.Up())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "books", "products"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var indexes int
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name IN ('users_email_key', 'users_phone_number_key')`,
	).Scan(&indexes))
	assert.Equal(t, 2, indexes)

	require.NoError(t, mg.Down())
	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`).Scan(&count))
	assert.Zero(t, count)
}
