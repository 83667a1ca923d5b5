package core

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"poolwatch/db"
	"poolwatch/helper"
	"poolwatch/model"
)

// Poll stages, in execution order.
const (
	StageNetwork   = "network"
	StageTicker    = "ticker"
	StagePool      = "pool"
	StageEpoch     = "epoch"
	StageLastBlock = "lastBlock"
	StageReconcile = "reconcile"
)

type CycleResult struct {
	Run         uint64
	Success     bool
	FailedStage string
	Err         error
	Reconciled  ReconcileResult
	Duration    time.Duration
}

type stage struct {
	name    string
	enabled bool
	run     func(ctx context.Context) error
}

// Cycle runs one poll pass. A failing stage aborts the remaining ones; what earlier
// stages published stays visible.
func (c *Core) Cycle(ctx context.Context) CycleResult {
	start := c.now()
	run := c.tracker.runCounter.Load()
	result := CycleResult{Run: run, Success: true}

	stages := []stage{
		{StageNetwork, run <= 1 || run%c.cfg.Poll.NetworkEvery == 0, c.refreshNetwork},
		{StageTicker, true, c.refreshTicker},
		{StagePool, true, c.refreshPool},
		{StageEpoch, true, c.refreshEpochs},
		{StageLastBlock, true, c.refreshLastBlock},
		{StageReconcile, true, func(ctx context.Context) error {
			var err error
			snap := c.Snapshot()
			result.Reconciled, err = c.reconcile(ctx, snap.Blocks, snap.LastBlock)
			if err != nil && !c.cfg.Poll.ReconcileFailuresCount {
				slog.Error("LeaderLogs - reconciliation incomplete", "missing", result.Reconciled.Missing, "added", result.Reconciled.Added, "error", err)
				c.metrics.StageFailed(StageReconcile)
				return nil
			}
			return err
		}},
	}

	for _, s := range stages {
		if !s.enabled {
			continue
		}
		if err := s.run(ctx); err != nil {
			result.Success = false
			result.FailedStage = s.name
			result.Err = model.WithStage(s.name, err)
			c.metrics.StageFailed(s.name)
			slog.Error("Critical failure in poll stage", "stage", s.name, "run", run, "error", err)
			break
		}
	}

	result.Duration = c.now().Sub(start)
	tags := map[string]string{"pool": c.cfg.Pool.Hash}
	if result.FailedStage != "" {
		tags["failed_stage"] = result.FailedStage
	}
	c.writePoint(db.PollCycle, tags, map[string]interface{}{
		"run":         int64(run),
		"success":     result.Success,
		"duration_ms": result.Duration.Milliseconds(),
		"reconciled":  result.Reconciled.Added,
	}, start)
	if c.dbHandler != nil {
		c.dbHandler.Flush()
	}
	return result
}

func (c *Core) refreshNetwork(ctx context.Context) error {
	network, err := c.provider.GetNetwork(ctx)
	if err != nil {
		return err
	}
	c.network.Store(&network)
	return nil
}

func (c *Core) refreshTicker(ctx context.Context) error {
	ticker, err := c.tickers.GetTicker(ctx, c.cfg.Binance.Symbol)
	if err != nil {
		return err
	}
	c.ticker.Store(&ticker)
	return nil
}

// refreshPool replaces the snapshot as a whole. The last block is filled by the next stage.
func (c *Core) refreshPool(ctx context.Context) error {
	poolID := c.cfg.Pool.Hash
	pool, err := c.provider.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	delegators, err := c.provider.GetPoolDelegators(ctx, poolID)
	if err != nil {
		return err
	}
	history, err := c.provider.GetPoolHistory(ctx, poolID)
	if err != nil {
		return err
	}
	blocks, err := c.provider.GetPoolBlocks(ctx, poolID)
	if err != nil {
		return err
	}
	c.snapshot.Store(&model.PoolSnapshot{
		Pool:       &pool,
		Delegators: delegators,
		History:    history,
		Blocks:     blocks,
	})
	return nil
}

// refreshEpochs refreshes the latest epoch and backfills the two before it when absent.
func (c *Core) refreshEpochs(ctx context.Context) error {
	latest, err := c.provider.GetEpoch(ctx, helper.LatestEpoch)
	if err != nil {
		return err
	}
	c.epochCache.Upsert(latest)
	for _, n := range c.epochCache.Missing(latest.Epoch) {
		epoch, err := c.provider.GetEpoch(ctx, strconv.FormatUint(n, 10))
		if err != nil {
			return err
		}
		c.epochCache.Upsert(epoch)
	}
	c.epochCache.Trim(latest.Epoch)

	for _, e := range c.epochCache.LastN(helper.EpochWindow) {
		c.writePoint(db.Epoch, map[string]string{"epoch": strconv.FormatUint(e.Epoch, 10)}, map[string]interface{}{
			"block_count": int64(e.BlockCount),
			"tx_count":    int64(e.TxCount),
		}, time.Unix(e.StartTime, 0))
	}
	return nil
}

func (c *Core) refreshLastBlock(ctx context.Context) error {
	snap := c.snapshot.Load()
	if snap == nil || len(snap.Blocks) == 0 {
		return nil
	}
	block, err := c.provider.GetBlock(ctx, snap.Blocks[len(snap.Blocks)-1])
	if err != nil {
		return err
	}
	c.snapshot.Store(snap.WithLastBlock(&block))
	return nil
}
