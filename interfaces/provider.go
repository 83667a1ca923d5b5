package interfaces

import (
	"context"

	"poolwatch/model"
)

// PoolDataProvider is the chain data source for one stake pool.
// epochID is either a decimal epoch number or "latest".
type PoolDataProvider interface {
	GetNetwork(ctx context.Context) (model.Network, error)
	GetEpoch(ctx context.Context, epochID string) (model.Epoch, error)
	GetPool(ctx context.Context, poolID string) (model.Pool, error)
	GetPoolDelegators(ctx context.Context, poolID string) ([]model.Delegator, error)
	GetPoolHistory(ctx context.Context, poolID string) ([]model.PoolHistory, error)
	GetPoolBlocks(ctx context.Context, poolID string) ([]string, error)
	GetBlock(ctx context.Context, hash string) (model.Block, error)
}

type TickerProvider interface {
	GetTicker(ctx context.Context, symbol string) (model.Ticker, error)
}
