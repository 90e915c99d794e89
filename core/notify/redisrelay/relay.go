// Package redisrelay forwards new-mail events between instances over Redis
// pub/sub, so a recipient connected to another instance is still notified.
//
// The publishing instance only publishes when it has no local channel for the
// recipient. Subscribers deliver to their local registry and never republish,
// so each event reaches at most one channel.
package redisrelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/core/notify"
)

// DefaultChannel is the pub/sub channel name.
const DefaultChannel = "mailpush:notify"

// ErrRelayClosed is returned by Run when the subscription channel closes.
var ErrRelayClosed = errors.New("redisrelay: subscription closed")

type message struct {
	Recipient string       `json:"recipient"`
	Event     notify.Event `json:"event"`
}

// DeliverFunc delivers an event to a local channel.
// notify.Notifier.DeliverLocal matches it after adapting the return value.
type DeliverFunc func(ctx context.Context, recipient string, ev notify.Event)

// Relay publishes and consumes relayed events.
type Relay struct {
	client  goredis.UniversalClient
	channel string
	logger  *slog.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithChannel overrides the pub/sub channel name.
func WithChannel(name string) Option {
	return func(r *Relay) {
		if name != "" {
			r.channel = name
		}
	}
}

// WithLogger sets the relay logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Relay) {
		if log != nil {
			r.logger = log
		}
	}
}

// New creates a Relay over client.
func New(client goredis.UniversalClient, opts ...Option) *Relay {
	r := &Relay{
		client:  client,
		channel: DefaultChannel,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Publish sends ev for recipient to every subscribed instance.
func (r *Relay) Publish(ctx context.Context, recipient string, ev notify.Event) error {
	payload, err := json.Marshal(message{Recipient: recipient, Event: ev})
	if err != nil {
		return fmt.Errorf("encode relay message: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish relay message: %w", err)
	}
	return nil
}

// Run subscribes to the relay channel and hands each message to deliver
// until ctx is done. It returns nil on cancellation.
func (r *Relay) Run(ctx context.Context, deliver DeliverFunc) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	r.logger.InfoContext(ctx, "relay subscribed", logger.Component("redisrelay"), logger.Key("channel", r.channel))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrRelayClosed
			}
			r.handle(ctx, msg.Payload, deliver)
		}
	}
}

func (r *Relay) handle(ctx context.Context, payload string, deliver DeliverFunc) {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil || m.Recipient == "" {
		r.logger.WarnContext(ctx, "dropping malformed relay message",
			logger.Component("redisrelay"),
			logger.Error(err),
		)
		return
	}
	deliver(ctx, m.Recipient, m.Event)
}
