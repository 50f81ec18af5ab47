package notifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Dispatcher is the Notifier used by the monitor. It suppresses duplicate
// de-dup keys, fans a notification out to every transport and swallows
// transport failures after logging them.
type Dispatcher struct {
	transports []Transport
	store      DedupStore
	journal    DeliveryJournal
	logger     zerolog.Logger
	now        func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithJournal records every handled notification in j.
func WithJournal(j DeliveryJournal) DispatcherOption {
	return func(d *Dispatcher) {
		d.journal = j
	}
}

// WithDedupStore replaces the default in-memory de-dup store.
func WithDedupStore(store DedupStore) DispatcherOption {
	return func(d *Dispatcher) {
		if store != nil {
			d.store = store
		}
	}
}

// NewDispatcher creates a dispatcher over transports.
func NewDispatcher(logger zerolog.Logger, transports []Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		transports: transports,
		store:      NewMemoryDedupStore(),
		logger:     logger.With().Str("component", "Notifier").Logger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	names := make([]string, 0, len(d.transports))
	for _, t := range d.transports {
		names = append(names, t.Name())
	}
	d.logger.Info().Strs("transports", names).Msg("Notifier initialized")
	return d
}

// Send delivers n at most once per de-dup key. A notification without
// recipients is dropped silently; one without a key is never deduplicated.
func (d *Dispatcher) Send(ctx context.Context, n models.Notification) {
	if len(n.Recipients) == 0 {
		d.logger.Debug().Str("subject", n.Subject).Str("audience", string(n.Audience)).Msg("No recipients configured, skipping notification")
		return
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = d.now()
	}

	if n.DedupKey != "" && !d.store.TryMark(n.DedupKey) {
		d.logger.Info().Str("dedup_key", n.DedupKey).Msg("Duplicate notification avoided")
		d.record(ctx, n, models.DeliveryDuplicate, nil, nil)
		return
	}

	if len(d.transports) == 0 {
		d.logger.Warn().Str("subject", n.Subject).Msg("No notification transports configured")
		d.record(ctx, n, models.DeliveryNoChannels, nil, nil)
		return
	}

	results := make([]error, len(d.transports))
	var g errgroup.Group
	for i, t := range d.transports {
		i, t := i, t
		g.Go(func() error {
			results[i] = d.deliver(ctx, t, n)
			return nil
		})
	}
	_ = g.Wait()

	var accepted []string
	var failures []error
	for i, err := range results {
		switch {
		case err == nil:
			accepted = append(accepted, d.transports[i].Name())
		case errors.Is(err, errorwrapper.ErrTransportDisabled):
			// nothing to deliver on this channel
		default:
			failures = append(failures, err)
		}
	}

	status := models.DeliverySent
	switch {
	case len(accepted) == 0 && len(failures) > 0:
		status = models.DeliveryFailed
	case len(accepted) == 0:
		status = models.DeliveryNoChannels
	case len(failures) > 0:
		status = models.DeliveryPartial
	}
	d.record(ctx, n, status, accepted, failures)
}

func (d *Dispatcher) deliver(ctx context.Context, t Transport, n models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorwrapper.NewError("transport %s panicked: %v", t.Name(), r)
		}
		if err != nil && !errors.Is(err, errorwrapper.ErrTransportDisabled) {
			d.logger.Error().Err(err).
				Str("transport", t.Name()).
				Str("subject", n.Subject).
				Str("dedup_key", n.DedupKey).
				Msg("Notification delivery failed")
		}
	}()

	if err := t.Deliver(ctx, n); err != nil {
		return err
	}
	d.logger.Info().
		Str("transport", t.Name()).
		Str("subject", n.Subject).
		Str("severity", n.Severity.String()).
		Msg("Notification sent")
	return nil
}

func (d *Dispatcher) record(ctx context.Context, n models.Notification, status models.DeliveryStatus, accepted []string, failures []error) {
	if d.journal == nil {
		return
	}

	msgs := make([]string, 0, len(failures))
	for _, err := range failures {
		msgs = append(msgs, err.Error())
	}

	rec := models.DeliveryRecord{
		DedupKey:   n.DedupKey,
		Process:    n.Process,
		Step:       n.Step,
		Audience:   n.Audience,
		Recipients: n.Recipients,
		Subject:    n.Subject,
		Severity:   n.Severity,
		Status:     status,
		Transports: accepted,
		Error:      strings.Join(msgs, "; "),
		HandledAt:  d.now().UTC(),
	}
	if err := d.journal.RecordDelivery(ctx, rec); err != nil {
		d.logger.Warn().Err(err).Str("dedup_key", n.DedupKey).Msg("Failed to record notification in journal")
	}
}
