package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
)

// ChannelPrefix prefixes the Redis channel of every activity.
const ChannelPrefix = "activity-locations:"

type envelope struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type subscribeClient interface {
	PSubscribe(ctx context.Context, channels ...string) *redis.PubSub
}

var _ locationedit.Publisher = (*RedisPublisher)(nil)

// RedisPublisher forwards view events to other instances. Events are queued
// and sent by Run so Publish never waits on the network.
type RedisPublisher struct {
	client publishClient
	origin string
	queue  chan locationedit.Event
	logger *slog.Logger
}

func NewRedisPublisher(client publishClient, origin string, buffer int, logger *slog.Logger) *RedisPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &RedisPublisher{
		client: client,
		origin: origin,
		queue:  make(chan locationedit.Event, buffer),
		logger: logger,
	}
}

func (p *RedisPublisher) Publish(e locationedit.Event) {
	select {
	case p.queue <- e:
	default:
		p.logger.Warn("Redis event queue full, dropping event",
			slog.String("activity_id", e.ActivityID), slog.String("type", string(e.Type)))
	}
}

// Run sends queued events until ctx is done.
func (p *RedisPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-p.queue:
			if err := p.send(ctx, e); err != nil {
				p.logger.ErrorContext(ctx, "Failed to publish view event to Redis",
					slog.String("activity_id", e.ActivityID), slog.Any("error", err))
			}
		}
	}
}

func (p *RedisPublisher) send(ctx context.Context, e locationedit.Event) error {
	event, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg, err := json.Marshal(envelope{Origin: p.origin, Event: event})
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return p.client.Publish(ctx, ChannelPrefix+e.ActivityID, msg).Err()
}

// RedisRelay feeds events published by other instances into the local broker.
// Only views are shared: each instance keeps its own edit sessions, so all
// requests for one activity have to reach the same instance.
type RedisRelay struct {
	client subscribeClient
	broker *Broker
	origin string
	logger *slog.Logger
}

func NewRedisRelay(client subscribeClient, broker *Broker, origin string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{client: client, broker: broker, origin: origin, logger: logger}
}

// Run relays until ctx is done or the subscription fails.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.PSubscribe(ctx, ChannelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to view events: %w", err)
	}
	r.logger.Info("Relaying view events from Redis", slog.String("pattern", ChannelPrefix+"*"))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handle(msg.Channel, msg.Payload)
		}
	}
}

func (r *RedisRelay) handle(channel, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Warn("Ignoring malformed view event", slog.String("channel", channel), slog.Any("error", err))
		return
	}
	if env.Origin == r.origin {
		return
	}
	r.broker.Deliver(strings.TrimPrefix(channel, ChannelPrefix), env.Event)
}
