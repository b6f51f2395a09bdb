package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBolt     = "bolt"
)

// Keys shared by viper, the environment and cobra flags.
const (
	KeyEnv             = "app_env"
	KeyRunAddress      = "run_address"
	KeyDatabaseDriver  = "database_driver"
	KeyDatabaseURI     = "database_uri"
	KeyAutoMigrate     = "auto_migrate"
	KeyLogLevel        = "log_level"
	KeyReadTimeout     = "read_timeout"
	KeyWriteTimeout    = "write_timeout"
	KeyIdleTimeout     = "idle_timeout"
	KeyShutdownTimeout = "shutdown_timeout"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
}

type DB struct {
	Driver      string
	DatabaseURI string
	AutoMigrate bool
}

type Server struct {
	RunAddress      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type Logger struct {
	LogLevel string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnv, EnvLocal)
	v.SetDefault(KeyRunAddress, ":8080")
	v.SetDefault(KeyDatabaseDriver, DriverSQLite)
	v.SetDefault(KeyDatabaseURI, "recordkeeper.db")
	v.SetDefault(KeyAutoMigrate, true)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyReadTimeout, 10*time.Second)
	v.SetDefault(KeyWriteTimeout, 10*time.Second)
	v.SetDefault(KeyIdleTimeout, time.Minute)
	v.SetDefault(KeyShutdownTimeout, 15*time.Second)
}

// Load reads .env when present, then the environment, through v.
// Flags bound on v beforehand take precedence.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	SetDefaults(v)
	v.AutomaticEnv()

	config := Config{
		Env: v.GetString(KeyEnv),
		DB: DB{
			Driver:      v.GetString(KeyDatabaseDriver),
			DatabaseURI: v.GetString(KeyDatabaseURI),
			AutoMigrate: v.GetBool(KeyAutoMigrate),
		},
		Server: Server{
			RunAddress:      v.GetString(KeyRunAddress),
			ReadTimeout:     v.GetDuration(KeyReadTimeout),
			WriteTimeout:    v.GetDuration(KeyWriteTimeout),
			IdleTimeout:     v.GetDuration(KeyIdleTimeout),
			ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		},
		Logger: Logger{LogLevel: v.GetString(KeyLogLevel)},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite, DriverBolt:
	default:
		return fmt.Errorf("unknown database driver %q", c.DB.Driver)
	}
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("database_uri must not be empty")
	}
	if c.Server.RunAddress == "" {
		return fmt.Errorf("run_address must not be empty")
	}
	return nil
}
