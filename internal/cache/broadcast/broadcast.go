// Package broadcast fans local cache invalidations out to other replicas
// over Redis pub/sub.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel carrying invalidation notices.
const DefaultChannel = "checkpoint:cache:invalidate"

// Target is the cache side of a broadcast subscription.
type Target interface {
	InvalidateRemote()
}

type message struct {
	Origin string `json:"origin"`
	Reason string `json:"reason,omitempty"`
}

// Broadcaster publishes and receives invalidation notices. Each instance has
// a random origin id so a replica ignores its own notices.
type Broadcaster struct {
	client  redis.UniversalClient
	channel string
	origin  string
	logger  *slog.Logger
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithChannel overrides DefaultChannel.
func WithChannel(channel string) Option {
	return func(b *Broadcaster) {
		if channel != "" {
			b.channel = channel
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// New creates a Broadcaster on client.
func New(client redis.UniversalClient, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		client:  client,
		channel: DefaultChannel,
		origin:  uuid.NewString(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Origin identifies this replica on the channel.
func (b *Broadcaster) Origin() string {
	return b.origin
}

// Publish announces that this replica invalidated its cache.
func (b *Broadcaster) Publish(ctx context.Context, reason string) error {
	payload, err := json.Marshal(message{Origin: b.origin, Reason: reason})
	if err != nil {
		return fmt.Errorf("marshal invalidation: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

// Run subscribes to the channel and invalidates target on every notice from
// another replica. It blocks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context, target Target) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.logger.Info("cache invalidation subscriber started", "channel", b.channel, "origin", b.origin)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.handle(ctx, msg.Payload, target)
		}
	}
}

func (b *Broadcaster) handle(ctx context.Context, payload string, target Target) bool {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		b.logger.WarnContext(ctx, "dropping malformed invalidation", "error", err)
		return false
	}
	if m.Origin == b.origin {
		return false
	}
	target.InvalidateRemote()
	b.logger.DebugContext(ctx, "cache invalidated by peer", "origin", m.Origin, "reason", m.Reason)
	return true
}
