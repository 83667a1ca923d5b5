package core

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync/atomic"
	"time"

	"poolwatch/config"
	"poolwatch/helper"
	"poolwatch/interfaces"
	"poolwatch/metrics"
	"poolwatch/model"
)

// tracker holds the cycle counters shared by the scheduler, the health check and readers.
type tracker struct {
	runCounter   atomic.Uint64
	errorCounter atomic.Uint64
	isRunning    atomic.Bool
	lastRunAt    atomic.Int64 // unix nanoseconds
}

func (t *tracker) state() model.CycleState {
	return model.CycleState{
		RunCounter:   t.runCounter.Load(),
		ErrorCounter: t.errorCounter.Load(),
		IsRunning:    t.isRunning.Load(),
		LastRunAt:    time.Unix(0, t.lastRunAt.Load()).UnixMilli(),
	}
}

// Core owns the poller state. The scheduler goroutine is the only writer of the snapshot,
// ticker and network cells; readers load them without blocking the poller.
type Core struct {
	cfg        config.Config
	provider   interfaces.PoolDataProvider
	tickers    interfaces.TickerProvider
	store      interfaces.BlockStore
	dbHandler  interfaces.DatabaseHandler
	notifier   interfaces.Notifier
	metrics    *metrics.Metrics
	now        func() time.Time
	epochCache *helper.EpochCache

	snapshot atomic.Pointer[model.PoolSnapshot]
	ticker   atomic.Pointer[model.Ticker]
	network  atomic.Pointer[model.Network]

	tracker *tracker
	health  *Health
}

type Option func(*Core)

func WithDatabaseHandler(h interfaces.DatabaseHandler) Option {
	return func(c *Core) { c.dbHandler = h }
}

func WithNotifier(n interfaces.Notifier) Option {
	return func(c *Core) { c.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Core) { c.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(c *Core) { c.now = now }
}

func New(cfg config.Config, provider interfaces.PoolDataProvider, tickers interfaces.TickerProvider, store interfaces.BlockStore, opts ...Option) *Core {
	c := &Core{
		cfg:        cfg,
		provider:   provider,
		tickers:    tickers,
		store:      store,
		now:        time.Now,
		epochCache: helper.NewEpochCache(provider),
		tracker:    &tracker{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.New()
	}
	if c.cfg.Poll.NetworkEvery == 0 {
		c.cfg.Poll.NetworkEvery = 10
	}
	if c.cfg.Poll.ReconcileConcurrency <= 0 {
		c.cfg.Poll.ReconcileConcurrency = 1
	}
	c.tracker.lastRunAt.Store(c.now().UnixNano())
	c.health = &Health{tracker: c.tracker, interval: cfg.Poll.Interval, now: c.now}
	return c
}

func (c *Core) Ticker() *model.Ticker {
	return c.ticker.Load()
}

func (c *Core) Network() *model.Network {
	return c.network.Load()
}

// Snapshot returns the last committed pool snapshot, never nil.
func (c *Core) Snapshot() model.PoolSnapshot {
	if s := c.snapshot.Load(); s != nil {
		return *s
	}
	return model.PoolSnapshot{}
}

func (c *Core) Pool() *model.Pool {
	return c.Snapshot().Pool
}

func (c *Core) PoolStats() model.PoolStats {
	s := c.Snapshot()
	return model.PoolStats{Pool: s.Pool, Delegators: s.Delegators, Blocks: s.Blocks}
}

func (c *Core) Delegators() []model.Delegator {
	return c.Snapshot().Delegators
}

func (c *Core) History() []model.PoolHistory {
	return c.Snapshot().History
}

func (c *Core) Blocks() []string {
	return c.Snapshot().Blocks
}

func (c *Core) LastBlock() *model.Block {
	return c.Snapshot().LastBlock
}

// Epochs returns the cached epoch window, most recent first.
func (c *Core) Epochs() []model.Epoch {
	return c.epochCache.LastN(helper.EpochWindow)
}

// Epoch looks an epoch up in the cache, fetching it from the provider on a miss.
func (c *Core) Epoch(ctx context.Context, epochID string) (model.Epoch, bool) {
	return c.epochCache.Get(ctx, epochID)
}

// Leaderlogs lists future assignments (day only) followed by past ones, newest first.
func (c *Core) Leaderlogs(ctx context.Context) []model.LeaderlogView {
	logs, err := c.store.List(ctx)
	if err != nil {
		slog.Error("Failed to list leaderlogs", "error", err)
		return []model.LeaderlogView{}
	}
	nowMs := c.now().UnixMilli()
	future := make([]model.LeaderlogView, 0)
	past := make([]model.LeaderlogView, 0, len(logs))
	for _, l := range logs {
		at := time.UnixMilli(l.TimeMs).UTC()
		if l.TimeMs >= nowMs {
			future = append(future, model.LeaderlogView{
				Time:           at.Format(time.DateOnly),
				Epoch:          l.Epoch,
				EpochSlotIdeal: l.EpochSlotIdeal,
			})
			continue
		}
		slot, epochSlot := l.Slot, l.EpochSlot
		past = append(past, model.LeaderlogView{
			Time:           at.Format(time.RFC3339),
			Epoch:          l.Epoch,
			EpochSlotIdeal: l.EpochSlotIdeal,
			Slot:           &slot,
			EpochSlot:      &epochSlot,
		})
	}
	return append(future, past...)
}

// AddLeaderlogs stores planned leaderlogs. An empty configured key authorises nobody.
func (c *Core) AddLeaderlogs(ctx context.Context, apiKey string, logs []model.Leaderlog) (int, error) {
	expected := c.cfg.Server.APIKey
	if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
		return 0, model.ErrUnauthorized
	}
	n, err := c.store.BulkInsert(ctx, logs)
	if err != nil {
		return 0, err
	}
	slog.Info("LeaderLogs - blocks added", "count", n, "submitted", len(logs))
	return n, nil
}

func (c *Core) State() model.CycleState {
	return c.tracker.state()
}

func (c *Core) Health() *Health {
	return c.health
}

func (c *Core) HealthStatus() int {
	return c.health.StatusCode()
}

func (c *Core) writePoint(measurement string, tags map[string]string, fields map[string]interface{}, ts time.Time) {
	if c.dbHandler == nil {
		return
	}
	c.dbHandler.WritePoint(measurement, tags, fields, ts)
}
