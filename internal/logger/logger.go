// Package logger provides structured logging for the pensum server,
// backed by zerolog.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind the small surface the rest of the
// code uses.
type Logger struct {
	z zerolog.Logger
}

// New creates a logger writing to stdout. Unknown levels fall back to
// info; format "text" selects the human-readable console writer.
func New(level, format string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if format == "text" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return &Logger{z: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string) {
	l.z.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}

func (l *Logger) Error(msg string, err error) {
	l.z.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

// Fatal logs the error and exits the process.
func (l *Logger) Fatal(msg string, err error) {
	l.z.Fatal().Err(err).Msg(msg)
}

// With returns a child logger carrying an extra field on every entry.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger()}
}
