package logger

import (
	"errors"
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config  LoggerConfig
	factory *WriterFactory
	err     error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:  DefaultLoggerConfig(),
		factory: NewWriterFactory(),
	}
}

// WithConfig sets the logger configuration from the application log section
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	loggerConfig, err := FromLogConfig(cfg)
	if err != nil {
		lb.err = err
		return lb
	}
	loggerConfig.ConsoleOut = lb.config.ConsoleOut
	lb.config = loggerConfig
	return lb
}

// WithConsoleOutput redirects console output, e.g. to a buffer in tests
func (lb *LoggerBuilder) WithConsoleOutput(out io.Writer) *LoggerBuilder {
	lb.config.ConsoleOut = out
	return lb
}

// WithoutFile disables file output regardless of configuration
func (lb *LoggerBuilder) WithoutFile() *LoggerBuilder {
	lb.config.EnableFile = false
	return lb
}

// Build creates the logger instance. The returned closer releases the log
// file and is never nil.
func (lb *LoggerBuilder) Build() (zerolog.Logger, io.Closer, error) {
	if lb.err != nil {
		return zerolog.Nop(), nopCloser{}, lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config.Format, lb.config.ConsoleOut))
	}

	if lb.config.EnableFile {
		fileWriter, fileCloser, err := lb.factory.CreateFileWriter(lb.config)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errorwrapper.WrapErrorf(err, "failed to prepare log file %s", lb.config.FilePath)
		}
		writers = append(writers, fileWriter)
		closer = fileCloser
	}

	if len(writers) == 0 {
		return zerolog.Nop(), nopCloser{}, errors.New("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	lb.configureStandardLog(zerologInstance)

	return zerologInstance, closer, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

// configureStandardLog routes the standard library logger through zerolog
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
