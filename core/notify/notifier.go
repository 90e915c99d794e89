package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/logger"
)

// Relay forwards events for recipients that have no channel on this instance.
type Relay interface {
	Publish(ctx context.Context, recipient string, ev Event) error
}

// Notifier delivers new-mail events to online recipients.
type Notifier struct {
	registry *Registry
	timeout  time.Duration
	relay    Relay
	logger   *slog.Logger
	metrics  *Metrics
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithDeliveryTimeout bounds a single NotifyIfOnline call.
func WithDeliveryTimeout(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithRelay forwards events for recipients not connected to this instance.
func WithRelay(r Relay) NotifierOption {
	return func(n *Notifier) {
		n.relay = r
	}
}

// WithNotifierLogger sets the logger for delivery outcomes.
func WithNotifierLogger(log *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		if log != nil {
			n.logger = log
		}
	}
}

// WithNotifierMetrics records delivery results.
func WithNotifierMetrics(m *Metrics) NotifierOption {
	return func(n *Notifier) {
		n.metrics = m
	}
}

// NewNotifier creates a Notifier over registry.
func NewNotifier(registry *Registry, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		registry: registry,
		timeout:  DefaultConfig().DeliveryTimeout,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyIfOnline pushes a NEW_MAIL event to recipient if they hold an open
// channel. It never fails: every error is logged and dropped. The call
// returns within the delivery timeout even if ctx is never cancelled.
func (n *Notifier) NotifyIfOnline(ctx context.Context, recipient, sender, subject string) {
	defer func() {
		if r := recover(); r != nil {
			n.metrics.notification(ResultFailed)
			n.logger.Error("notification panic", logger.Component("notify"), logger.Key("panic", r))
		}
	}()

	recipient = auth.NormalizeIdentity(recipient)
	if recipient == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	ev := NewMailEvent(sender, subject)
	result := n.DeliverLocal(ctx, recipient, ev)
	if result != ResultOffline || n.relay == nil {
		return
	}

	if err := n.relay.Publish(ctx, recipient, ev); err != nil {
		n.metrics.notification(ResultFailed)
		n.logger.Warn("relay publish failed",
			logger.Component("notify"),
			logger.Identity(recipient),
			logger.Error(err),
		)
		return
	}
	n.metrics.notification(ResultRelayed)
}

// DeliverLocal delivers ev to recipient's channel on this instance only and
// returns one of the Result constants. Relay subscribers call it directly.
func (n *Notifier) DeliverLocal(ctx context.Context, recipient string, ev Event) string {
	result := n.deliverLocal(ctx, recipient, ev)
	n.metrics.notification(result)
	return result
}

func (n *Notifier) deliverLocal(ctx context.Context, recipient string, ev Event) string {
	ch, ok := n.registry.Lookup(recipient)
	if !ok {
		n.logger.Debug("recipient offline", logger.Component("notify"), logger.Identity(recipient))
		return ResultOffline
	}
	if !ch.Open() {
		n.logger.Debug("recipient channel closed",
			logger.Component("notify"),
			logger.Identity(recipient),
			logger.ConnID(ch.ID()),
		)
		return ResultClosed
	}

	if err := ch.Deliver(ctx, ev); err != nil {
		if errors.Is(err, ErrChannelClosed) {
			return ResultClosed
		}
		n.logger.Warn("notification delivery failed",
			logger.Component("notify"),
			logger.Identity(recipient),
			logger.ConnID(ch.ID()),
			logger.Error(err),
		)
		return ResultFailed
	}

	n.logger.Debug("notification delivered",
		logger.Component("notify"),
		logger.Identity(recipient),
		logger.ConnID(ch.ID()),
		logger.Event(ev.Type),
	)
	return ResultDelivered
}
