package logger

import (
	"io"
	"os"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/rs/zerolog"
)

// New creates the application logger from the log section of the configuration.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}

// NewBootstrap returns a console logger usable before configuration is loaded.
func NewBootstrap() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Str("component", "bootstrap").
		Logger()
}
