package interfaces

import (
	"context"

	"poolwatch/model"
)

// Core is the read side consumed by the HTTP layer.
type Core interface {
	Ticker() *model.Ticker
	Network() *model.Network
	Pool() *model.Pool
	PoolStats() model.PoolStats
	Delegators() []model.Delegator
	History() []model.PoolHistory
	Blocks() []string
	LastBlock() *model.Block
	Epochs() []model.Epoch
	Epoch(ctx context.Context, epochID string) (model.Epoch, bool)
	Leaderlogs(ctx context.Context) []model.LeaderlogView
	AddLeaderlogs(ctx context.Context, apiKey string, logs []model.Leaderlog) (int, error)
	HealthStatus() int
}
