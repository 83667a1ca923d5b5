package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"poolwatch/config"
	"poolwatch/interfaces"
	"poolwatch/model"
)

// Publisher appends reconciled leaderlogs to a Redis stream.
type Publisher struct {
	client redis.UniversalClient
	stream string
}

// NewPublisher returns nil when no redis url is configured.
func NewPublisher(cfg config.RedisConfig) (interfaces.Notifier, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, model.NewConfigurationError(fmt.Sprintf("parse redis url: %v", err))
	}
	slog.Info("publishing leaderlogs to redis", "addr", opts.Addr, "stream", cfg.Stream)
	return NewPublisherWithClient(redis.NewClient(opts), cfg.Stream), nil
}

func NewPublisherWithClient(client redis.UniversalClient, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) LeaderlogAdded(ctx context.Context, l model.Leaderlog) error {
	hash := ""
	if l.Hash != nil {
		hash = *l.Hash
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"hash":       hash,
			"slot":       l.Slot,
			"epoch":      l.Epoch,
			"epoch_slot": l.EpochSlot,
			"time":       l.TimeMs,
		},
	}).Err()
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
