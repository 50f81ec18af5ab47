package logger

import (
	"github.com/aleister1102/outboundwatch/internal/config"
)

// FromLogConfig converts the application's log section into a LoggerConfig.
// Size and backup limits fall back to the defaults when unset.
func FromLogConfig(cfg config.LogConfig) (LoggerConfig, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return LoggerConfig{}, err
	}

	lc := DefaultLoggerConfig()
	lc.Level = level
	lc.Format = ParseFormat(cfg.LogFormat)
	lc.EnableFile = cfg.LogFile != ""
	lc.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		lc.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		lc.MaxBackups = cfg.MaxLogBackups
	}
	return lc, nil
}
