package live

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/hackathon-api/internal/domain"
)

const publishTimeout = 2 * time.Second

func encodeEvent(eventType domain.EventType, payload any) ([]byte, error) {
	return json.Marshal(domain.Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Payload: payload,
		At:      time.Now().UTC(),
	})
}

// LocalPublisher writes events straight to the in-process hub.
type LocalPublisher struct {
	hub     *Hub
	metrics Metrics
}

func NewLocalPublisher(hub *Hub, metrics Metrics) *LocalPublisher {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &LocalPublisher{
		hub:     hub,
		metrics: metrics,
	}
}

func (p *LocalPublisher) Publish(_ context.Context, eventType domain.EventType, payload any) {
	data, err := encodeEvent(eventType, payload)
	if err != nil {
		zap.L().Warn("failed to encode live event", zap.String("type", string(eventType)), zap.Error(err))
		return
	}

	p.hub.Broadcast(data)
	p.metrics.LiveEventPublished(string(eventType))
}

// RedisPublisher sends events to a Redis channel so every instance running
// Relay receives them.
type RedisPublisher struct {
	rdb     *goredis.Client
	channel string
	metrics Metrics
}

func NewRedisPublisher(rdb *goredis.Client, channel string, metrics Metrics) *RedisPublisher {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &RedisPublisher{
		rdb:     rdb,
		channel: channel,
		metrics: metrics,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType domain.EventType, payload any) {
	data, err := encodeEvent(eventType, payload)
	if err != nil {
		zap.L().Warn("failed to encode live event", zap.String("type", string(eventType)), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err = p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		zap.L().Warn("failed to publish live event",
			zap.String("channel", p.channel),
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
		return
	}

	p.metrics.LiveEventPublished(string(eventType))
}

// Relay forwards every message on the Redis channel to the local hub until
// ctx is cancelled.
func Relay(ctx context.Context, rdb *goredis.Client, channel string, hub *Hub) error {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("sub.Receive -> %w", err)
	}

	msgCh := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgCh:
			if !ok {
				return nil
			}
			hub.Broadcast([]byte(msg.Payload))
		}
	}
}
