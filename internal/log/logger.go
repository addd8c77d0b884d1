// Package log is a thin wrapper over log/slog that stamps every record
// with the component that emitted it, plus the request-scoped middleware
// the HTTP handlers pull loggers from.
package log

import (
	"log/slog"
	"os"
)

// Logger emits slog records carrying a fixed component field.
type Logger struct {
	*slog.Logger
	component string
}

// Config for New. A nil Handler means text to stdout at Level.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	return &Logger{
		Logger:    slog.New(handler),
		component: config.Component,
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, l.stamp(args)...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, l.stamp(args)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, l.stamp(args)...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, l.stamp(args)...)
}

func (l *Logger) stamp(args []any) []any {
	return append([]any{FieldComponent, l.component}, args...)
}

// SetDefault routes bare slog calls through this logger's handler, so
// packages logging via the slog package-level functions land in the
// same stream.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
