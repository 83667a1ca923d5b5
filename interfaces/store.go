package interfaces

import (
	"context"

	"poolwatch/model"
)

// BlockStore persists leaderlogs. Upsert is keyed on the slot and hash unique constraints.
type BlockStore interface {
	ListHashes(ctx context.Context) (map[string]struct{}, error)
	Upsert(ctx context.Context, l model.Leaderlog) error
	BulkInsert(ctx context.Context, logs []model.Leaderlog) (int, error)
	List(ctx context.Context) ([]model.Leaderlog, error)
	Close() error
}
