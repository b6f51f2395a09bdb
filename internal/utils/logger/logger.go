package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/server/config"
)

// New builds the process logger for env: colored text for local runs,
// JSON everywhere else. Prod starts at info, the rest at debug.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel is New with an explicit level ("debug", "info", "warn",
// "error"). An empty or unknown level keeps the environment default.
func NewWithLevel(env, level string) *slog.Logger {
	lvl := defaultLevel(env)
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.ToUpper(level))); err == nil {
			lvl = parsed
		}
	}

	switch env {
	case config.EnvLocal:
		return newPretty(lvl)
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
}

func defaultLevel(env string) slog.Level {
	if env == config.EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func setupPrettySlog() *slog.Logger {
	return newPretty(slog.LevelDebug)
}

func newPretty(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}
	return slog.New(opts.NewPrettyHandler(os.Stdout))
}
