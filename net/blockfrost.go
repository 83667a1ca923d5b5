package net

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"strconv"

	"poolwatch/model"
)

// blockfrostPageSize is the maximum page size accepted by Blockfrost list endpoints.
const blockfrostPageSize = 100

// Blockfrost is a PoolDataProvider backed by the Blockfrost REST API.
type Blockfrost struct {
	Client
	maxPages int
}

type blockfrostError struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func NewBlockfrost(pool *ConnectionPool, apiKey string, maxPages int) *Blockfrost {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Blockfrost{
		Client: Client{
			pool:    pool,
			headers: map[string]string{"project_id": apiKey},
			decodeError: func(body []byte) string {
				var e blockfrostError
				if err := json.Unmarshal(body, &e); err != nil {
					return ""
				}
				if e.Message != "" {
					return e.Error + ": " + e.Message
				}
				return e.Error
			},
		},
		maxPages: maxPages,
	}
}

func (b *Blockfrost) GetNetwork(ctx context.Context) (model.Network, error) {
	var network model.Network
	err := b.get(ctx, "/network", nil, &network)
	return network, err
}

// GetEpoch accepts a decimal epoch number; anything else is treated as "latest".
func (b *Blockfrost) GetEpoch(ctx context.Context, epochID string) (model.Epoch, error) {
	if _, err := strconv.ParseUint(epochID, 10, 64); err != nil {
		epochID = "latest"
	}
	var epoch model.Epoch
	err := b.get(ctx, "/epochs/"+epochID, nil, &epoch)
	return epoch, err
}

func (b *Blockfrost) GetPool(ctx context.Context, poolID string) (model.Pool, error) {
	var pool model.Pool
	err := b.get(ctx, "/pools/"+escape(poolID), nil, &pool)
	return pool, err
}

func (b *Blockfrost) GetPoolDelegators(ctx context.Context, poolID string) ([]model.Delegator, error) {
	delegators := make([]model.Delegator, 0)
	err := b.get(ctx, "/pools/"+escape(poolID)+"/delegators", nil, &delegators)
	return delegators, err
}

func (b *Blockfrost) GetPoolHistory(ctx context.Context, poolID string) ([]model.PoolHistory, error) {
	history := make([]model.PoolHistory, 0)
	err := b.get(ctx, "/pools/"+escape(poolID)+"/history", nil, &history)
	return history, err
}

// GetPoolBlocks returns the pool's block hashes oldest first. Pages are read newest first so
// that the maxPages cap drops the oldest blocks.
func (b *Blockfrost) GetPoolBlocks(ctx context.Context, poolID string) ([]string, error) {
	blocks := make([]string, 0)
	for page := 1; page <= b.maxPages; page++ {
		query := url.Values{}
		query.Set("count", strconv.Itoa(blockfrostPageSize))
		query.Set("page", strconv.Itoa(page))
		query.Set("order", "desc")

		var hashes []string
		if err := b.get(ctx, "/pools/"+escape(poolID)+"/blocks", query, &hashes); err != nil {
			return nil, err
		}
		blocks = append(blocks, hashes...)
		if len(hashes) < blockfrostPageSize {
			break
		}
	}
	slices.Reverse(blocks)
	return blocks, nil
}

func (b *Blockfrost) GetBlock(ctx context.Context, hash string) (model.Block, error) {
	var block model.Block
	err := b.get(ctx, "/blocks/"+escape(hash), nil, &block)
	return block, err
}
