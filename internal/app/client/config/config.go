package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultTimeout       = 30 * time.Second
)

// Keys shared by viper, the environment and cobra flags.
const (
	KeyEnv           = "app_env"
	KeyServerAddress = "server_address"
	KeyLogLevel      = "log_level"
	KeyEnableTLS     = "enable_tls"
	KeyTimeout       = "request_timeout"
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	LogLevel      string        `mapstructure:"log_level"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Timeout       time.Duration `mapstructure:"request_timeout"`
}

// Load загружает конфигурацию клиента из .env, окружения и флагов,
// привязанных к v.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	v.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	v.SetDefault(KeyEnv, defaultEnv)
	v.SetDefault(KeyServerAddress, defaultServerAddress)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyEnableTLS, false)
	v.SetDefault(KeyTimeout, defaultTimeout)

	config := &Config{
		Env:           v.GetString(KeyEnv),
		ServerAddress: v.GetString(KeyServerAddress),
		LogLevel:      v.GetString(KeyLogLevel),
		EnableTLS:     v.GetBool(KeyEnableTLS),
		Timeout:       v.GetDuration(KeyTimeout),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("request_timeout должен быть положительным")
	}
	return nil
}

// BaseURL возвращает адрес сервера со схемой
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}
