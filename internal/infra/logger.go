package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the process logger. Development gets a human-readable
// console writer at debug level; everything else emits JSON at info level.
func NewLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases zerolog.Logger so other packages can depend on the logging
// contract without importing the third-party module directly.
type Logger = zerolog.Logger
