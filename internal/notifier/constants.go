package notifier

import "time"

// Webhook formatting constants
const (
	WebhookUsername     = "Outbound Watch"
	InfoEmbedColor      = 0x5BC0DE // Bootstrap info blue
	WarningEmbedColor   = 0xF0AD4E // Bootstrap warning orange
	CriticalEmbedColor  = 0xDC3545 // Red for critical alerts
	EmbedFooterText     = "outboundwatch"
	MaxEmbedDescription = 4000
)

// Discord allows five webhook requests per two seconds
const (
	WebhookRateInterval = 400 * time.Millisecond
	WebhookRateBurst    = 5
)

// Transport names
const (
	TransportEmail   = "email"
	TransportWebhook = "webhook"
	TransportLog     = "log"
)
