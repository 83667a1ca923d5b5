package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"poolwatch/db"
	"poolwatch/model"
)

type ReconcileResult struct {
	Missing int
	Added   int
}

// missingBlocks keeps provider order and drops duplicates and already persisted hashes.
func missingBlocks(provider []string, persisted map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(provider))
	missing := make([]string, 0)
	for _, hash := range provider {
		if _, ok := persisted[hash]; ok {
			continue
		}
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		missing = append(missing, hash)
	}
	return missing
}

// reconcile writes every minted block the store does not know about yet. All tasks are
// joined before returning and every task failure is reported. last, when set, is the
// already fetched most recent block and is not requested again.
func (c *Core) reconcile(ctx context.Context, blocks []string, last *model.Block) (ReconcileResult, error) {
	persisted, err := c.store.ListHashes(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}
	missing := missingBlocks(blocks, persisted)
	result := ReconcileResult{Missing: len(missing)}
	if len(missing) == 0 {
		return result, nil
	}
	slog.Debug("LeaderLogs - reconciling blocks", "missing", len(missing))

	var (
		g     errgroup.Group
		added atomic.Int64
	)
	errs := make([]error, len(missing))
	g.SetLimit(c.cfg.Poll.ReconcileConcurrency)
	for i, hash := range missing {
		g.Go(func() error {
			if errs[i] = c.addLeaderlog(ctx, hash, last); errs[i] != nil {
				return errs[i]
			}
			added.Add(1)
			return nil
		})
	}
	err = g.Wait()
	result.Added = int(added.Load())
	c.metrics.Reconciled(result.Added)
	if err != nil {
		return result, errors.Join(errs...)
	}
	return result, nil
}

func (c *Core) addLeaderlog(ctx context.Context, hash string, last *model.Block) error {
	block, err := c.block(ctx, hash, last)
	if err != nil {
		return fmt.Errorf("block %s: %w", hash, err)
	}
	l := model.LeaderlogFromBlock(block)
	if err := c.store.Upsert(ctx, l); err != nil {
		return fmt.Errorf("block %s: %w", hash, err)
	}
	slog.Info("LeaderLogs - Block hash for slot added", "hash", hash, "slot", l.Slot)

	c.writePoint(db.Leaderlog, map[string]string{
		"pool":  c.cfg.Pool.Hash,
		"epoch": strconv.FormatUint(l.Epoch, 10),
	}, map[string]interface{}{
		"slot":       int64(l.Slot),
		"epoch_slot": int64(l.EpochSlot),
		"hash":       hash,
	}, time.UnixMilli(l.TimeMs))

	if c.notifier != nil {
		if err := c.notifier.LeaderlogAdded(ctx, l); err != nil {
			slog.Warn("Failed to publish leaderlog", "hash", hash, "error", err)
		}
	}
	return nil
}

func (c *Core) block(ctx context.Context, hash string, last *model.Block) (model.Block, error) {
	if last != nil && last.Hash == hash {
		return *last, nil
	}
	return c.provider.GetBlock(ctx, hash)
}
