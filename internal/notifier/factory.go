package notifier

import (
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/rs/zerolog"
)

// NewFromConfig wires the dispatcher with every transport the configuration
// enables. With none enabled, alerts go to the log.
func NewFromConfig(cfg config.NotificationConfig, logger zerolog.Logger, opts ...DispatcherOption) (*Dispatcher, error) {
	var transports []Transport

	if cfg.SMTP.Enabled() {
		transports = append(transports, NewEmailTransport(cfg.SMTP, logger))
	}

	if cfg.WebhookURL != "" {
		webhook, err := NewWebhookTransport(cfg, nil, logger)
		if err != nil {
			return nil, err
		}
		transports = append(transports, webhook)
	}

	if len(transports) == 0 {
		logger.Warn().Msg("No SMTP host or webhook configured, alerts will only be logged")
		transports = append(transports, NewLogTransport(logger))
	}

	return NewDispatcher(logger, transports, opts...), nil
}
