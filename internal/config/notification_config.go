package config

import "time"

// SMTPConfig defines the outgoing mail relay
type SMTPConfig struct {
	Host          string `json:"host,omitempty" yaml:"host,omitempty" validate:"omitempty,hostname_rfc1123|ip"`
	Port          int    `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	EnableSSL     bool   `json:"enable_ssl" yaml:"enable_ssl"`
	Username      string `json:"username,omitempty" yaml:"username,omitempty"`
	Password      string `json:"password,omitempty" yaml:"password,omitempty"`
	From          string `json:"from,omitempty" yaml:"from,omitempty" validate:"required_with=Host"`
	TimeoutMillis int    `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty" validate:"omitempty,min=1"`
}

// Enabled reports whether a relay host is configured.
func (sc SMTPConfig) Enabled() bool {
	return sc.Host != ""
}

func (sc SMTPConfig) Timeout() time.Duration {
	return time.Duration(sc.TimeoutMillis) * time.Millisecond
}

// EmailGroupsConfig defines the recipient lists for each audience
type EmailGroupsConfig struct {
	ItOps        []string `json:"it_ops,omitempty" yaml:"it_ops,omitempty" validate:"omitempty,dive,email"`
	InternalTeam []string `json:"internal_team,omitempty" yaml:"internal_team,omitempty" validate:"omitempty,dive,email"`
	Client       []string `json:"client,omitempty" yaml:"client,omitempty" validate:"omitempty,dive,email"`
}

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	SMTP                  SMTPConfig        `json:"smtp,omitempty" yaml:"smtp,omitempty"`
	EmailGroups           EmailGroupsConfig `json:"email_groups,omitempty" yaml:"email_groups,omitempty"`
	WebhookURL            string            `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,url"`
	WebhookTimeoutSeconds int               `json:"webhook_timeout_seconds,omitempty" yaml:"webhook_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	MentionRoleIDs        []string          `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		SMTP: SMTPConfig{
			Port:          DefaultSMTPPort,
			TimeoutMillis: DefaultSMTPTimeoutMs,
		},
		EmailGroups:           EmailGroupsConfig{},
		WebhookURL:            "",
		WebhookTimeoutSeconds: DefaultWebhookTimeoutSeconds,
		MentionRoleIDs:        []string{},
	}
}

func (nc NotificationConfig) WebhookTimeout() time.Duration {
	return time.Duration(nc.WebhookTimeoutSeconds) * time.Second
}
