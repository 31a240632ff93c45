package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name string
	base zerolog.Logger // without the component field
	zl   zerolog.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance writing to stdout.
// level is one of DEBUG, INFO, WARNING, ERROR; format is "console" or "json".
func NewLogger(level, format, name string) *Logger {
	return NewLoggerTo(os.Stdout, level, format, name)
}

// -----------------------------------------------------------------------------

// NewLoggerTo creates a Logger writing to w.
func NewLoggerTo(w io.Writer, level, format, name string) *Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	base := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{
		name: name,
		base: base,
		zl:   base.With().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{name: "nop", base: zerolog.Nop(), zl: zerolog.Nop()}
}

// -----------------------------------------------------------------------------

// Named returns a child logger tagged with another component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		name: name,
		base: l.base,
		zl:   l.base.With().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.zl.WithLevel(zerolog.FatalLevel).Msgf(format, args...)
	os.Exit(1)
}

// -----------------------------------------------------------------------------

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARNING", "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
