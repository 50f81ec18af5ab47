package models

import (
	"fmt"
	"strings"
	"time"
)

// Severity grades a notification for transports that can render it.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Audience names the recipient group a notification is addressed to.
type Audience string

const (
	AudienceItOps        Audience = "it_ops"
	AudienceInternalTeam Audience = "internal_team"
	AudienceClient       Audience = "client"
)

// Notification is one alert. DedupKey identifies the logical event: at most
// one notification per key is delivered for the life of the process.
type Notification struct {
	DedupKey   string
	Audience   Audience
	Recipients []string
	Subject    string
	Body       string
	Severity   Severity
	Process    string
	Step       string
	CreatedAt  time.Time
}

// DedupKey builds "<step><condition>-<process>[-<file>]-<yyyyMMdd>".
func DedupKey(step, condition, process, fileName string, day time.Time) string {
	parts := []string{step + condition, process}
	if fileName != "" {
		parts = append(parts, fileName)
	}
	parts = append(parts, day.Format("20060102"))
	return strings.Join(parts, "-")
}

// ProcessSubject prefixes subject with the bracketed process name.
func ProcessSubject(process, subject string) string {
	return fmt.Sprintf("[%s] %s", process, subject)
}

// DeliveryStatus is the outcome of handing a notification to the transports.
type DeliveryStatus string

const (
	DeliverySent       DeliveryStatus = "SENT"
	DeliveryFailed     DeliveryStatus = "FAILED"
	DeliveryPartial    DeliveryStatus = "PARTIAL"
	DeliveryDuplicate  DeliveryStatus = "DUPLICATE"
	DeliveryNoChannels DeliveryStatus = "NO_CHANNELS"
)

// DeliveryRecord is one journal entry for a handled notification.
type DeliveryRecord struct {
	DedupKey   string
	Process    string
	Step       string
	Audience   Audience
	Recipients []string
	Subject    string
	Severity   Severity
	Status     DeliveryStatus
	Transports []string // transports that accepted the message
	Error      string
	HandledAt  time.Time
}
