package notifier

import (
	"context"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// MailSender hands a composed message to an SMTP relay.
type MailSender func(ctx context.Context, msg *mail.Msg) error

// EmailTransport delivers notifications as plain-text mail through an SMTP relay.
type EmailTransport struct {
	cfg    config.SMTPConfig
	send   MailSender
	logger zerolog.Logger
}

// EmailOption configures an EmailTransport.
type EmailOption func(*EmailTransport)

// WithMailSender replaces the SMTP dialer, e.g. with a recorder in tests.
func WithMailSender(send MailSender) EmailOption {
	return func(t *EmailTransport) {
		t.send = send
	}
}

// NewEmailTransport creates a transport for cfg. With no host configured
// every delivery reports ErrTransportDisabled.
func NewEmailTransport(cfg config.SMTPConfig, logger zerolog.Logger, opts ...EmailOption) *EmailTransport {
	t := &EmailTransport{
		cfg:    cfg,
		logger: logger.With().Str("component", "EmailTransport").Logger(),
	}
	t.send = t.dialAndSend
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *EmailTransport) Name() string {
	return TransportEmail
}

func (t *EmailTransport) Deliver(ctx context.Context, n models.Notification) error {
	if !t.cfg.Enabled() {
		return errorwrapper.ErrTransportDisabled
	}

	msg, err := t.compose(n)
	if err != nil {
		return err
	}
	if err := t.send(ctx, msg); err != nil {
		return errorwrapper.WrapErrorf(err, "smtp delivery to %s failed", t.cfg.Host)
	}
	return nil
}

func (t *EmailTransport) compose(n models.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(t.cfg.From); err != nil {
		return nil, errorwrapper.WrapErrorf(err, "invalid sender address %q", t.cfg.From)
	}
	if err := msg.To(n.Recipients...); err != nil {
		return nil, errorwrapper.WrapError(err, "invalid recipient address")
	}
	msg.Subject(n.Subject)
	msg.SetDate()
	if n.Severity == models.SeverityCritical {
		msg.SetImportance(mail.ImportanceHigh)
	}
	msg.SetBodyString(mail.TypeTextPlain, n.Body)
	return msg, nil
}

func (t *EmailTransport) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTimeout(t.cfg.Timeout()),
	}
	if t.cfg.EnableSSL {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
		)
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create smtp client")
	}
	return client.DialAndSendWithContext(ctx, msg)
}
