package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger with a console writer on stderr.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		defaultLogger = zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	})
}

// SetDebug lowers the default logger's level to debug.
func SetDebug() {
	Init()
	defaultLogger = defaultLogger.Level(zerolog.DebugLevel)
}

// Get returns the initialized default logger. Level methods have pointer
// receivers, so callers need the pointer, not a copy.
// It calls Init() to ensure the logger is ready before returning it.
func Get() *zerolog.Logger {
	Init()
	return &defaultLogger
}

// Info logs an informational message using the default logger.
func Info(msg string) {
	Get().Info().Msg(msg)
}

// Infof logs a formatted informational message using the default logger.
func Infof(format string, args ...any) {
	Get().Info().Msgf(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string) {
	Get().Warn().Msg(msg)
}

// Warnf logs a formatted warning message using the default logger.
func Warnf(format string, args ...any) {
	Get().Warn().Msgf(format, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, err error) {
	Get().Error().Err(err).Msg(msg)
}

// Debugf logs a formatted debug message using the default logger.
func Debugf(format string, args ...any) {
	Get().Debug().Msgf(format, args...)
}
