package store

import (
	"context"
	"fmt"

	"poolwatch/config"
	"poolwatch/interfaces"
	"poolwatch/model"
)

// Open returns the leaderlog store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (interfaces.BlockStore, error) {
	switch cfg.Driver {
	case "sqlite", "":
		s, err := NewSqliteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPgStore(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, model.NewConfigurationError(fmt.Sprintf("unsupported store driver: %s (use 'sqlite' or 'postgres')", cfg.Driver))
	}
}

func nullableHeight(h *uint64) interface{} {
	if h == nil {
		return nil
	}
	return int64(*h)
}

func nullableHash(h *string) interface{} {
	if h == nil || *h == "" {
		return nil
	}
	return *h
}
