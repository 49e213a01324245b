/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger once at startup, selecting a human-readable
console writer for development and plain JSON for production, and exposes
small helpers (Info, Warn, Error, Fatal) for call sites that do not carry
their own component logger.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global zerolog instance.
// Development mode lowers the level to Debug and writes colored console
// output to stderr; any other mode logs JSON at Info level to stdout.
// All logs carry a Unix timestamp and the calling location.
func Setup(development bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if development {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
// Components that log frequently should derive a child logger from it
// via With() instead of calling the package helpers below.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// pairs validates that fields holds an even number of elements (key-value
// pairs). An odd count would make zerolog panic, so the fields are dropped
// with a warning instead.
func pairs(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Str("log_level", level).
			Int("fields_count", len(fields)).
			Msg("Logx call received an odd number of fields. Fields ignored.")
		return nil
	}
	return fields
}

// Info records a message at the Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(pairs("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn records a message at the Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(pairs("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error records an error with a message and optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(pairs("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal records an error at the Fatal level and then terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(pairs("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
