package notifier

import (
	"context"

	"github.com/aleister1102/outboundwatch/internal/models"
)

// Notifier accepts alerts from the monitor. Send never fails the caller:
// delivery problems are handled and logged by the implementation.
type Notifier interface {
	Send(ctx context.Context, n models.Notification)
}

// Transport delivers a single notification over one channel.
type Transport interface {
	Name() string
	Deliver(ctx context.Context, n models.Notification) error
}

// DeliveryJournal records the outcome of every notification the dispatcher handles.
type DeliveryJournal interface {
	RecordDelivery(ctx context.Context, rec models.DeliveryRecord) error
}
