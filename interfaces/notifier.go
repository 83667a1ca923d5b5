package interfaces

import (
	"context"

	"poolwatch/model"
)

type Notifier interface {
	LeaderlogAdded(ctx context.Context, l model.Leaderlog) error
	Close() error
}
