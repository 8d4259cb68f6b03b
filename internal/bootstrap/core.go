package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	"github.com/init-pkg/siot-loader/internal/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Load,
			newLogger,
		),
	)
}

// fxLogger routes fx lifecycle events to the app logger at debug level.
func fxLogger() fx.Option {
	return fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
		l := &fxevent.SlogLogger{Logger: log}
		l.UseLogLevel(slog.LevelDebug)
		return l
	})
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
