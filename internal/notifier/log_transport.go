package notifier

import (
	"context"
	"strings"

	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
)

// LogTransport writes notifications to the log. It is used when no other
// channel is configured so alerts are never lost silently.
type LogTransport struct {
	logger zerolog.Logger
}

func NewLogTransport(logger zerolog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With().Str("component", "LogTransport").Logger()}
}

func (lt *LogTransport) Name() string {
	return TransportLog
}

func (lt *LogTransport) Deliver(_ context.Context, n models.Notification) error {
	lt.logger.WithLevel(severityLevel(n.Severity)).
		Str("subject", n.Subject).
		Strs("recipients", n.Recipients).
		Str("body", strings.ReplaceAll(strings.TrimSpace(n.Body), "\n", " | ")).
		Msg("Alert")
	return nil
}

func severityLevel(s models.Severity) zerolog.Level {
	switch s {
	case models.SeverityCritical:
		return zerolog.ErrorLevel
	case models.SeverityWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
