package core

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolwatch/config"
	"poolwatch/mocks"
	"poolwatch/model"
)

const testPool = "pool1test"

var testNow = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	core     *Core
	provider *mocks.MockPoolDataProvider
	tickers  *mocks.MockTickerProvider
	store    *mocks.MockBlockStore
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	cfg := config.Config{
		Pool:    config.PoolConfig{Hash: testPool},
		Binance: config.BinanceConfig{Symbol: "ADAUSDT"},
		Poll: config.PollConfig{
			Interval:             time.Minute,
			NetworkEvery:         10,
			MaxFailures:          10,
			ReconcileConcurrency: 4,
		},
		Server: config.ServerConfig{APIKey: "secret"},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	f := &fixture{
		provider: mocks.NewMockPoolDataProvider(ctrl),
		tickers:  mocks.NewMockTickerProvider(ctrl),
		store:    mocks.NewMockBlockStore(ctrl),
	}
	f.core = New(cfg, f.provider, f.tickers, f.store, WithClock(func() time.Time { return testNow }))
	return f
}

func u64(v uint64) *uint64 { return &v }

func block(hash string, slot uint64) model.Block {
	return model.Block{Hash: hash, Time: 1685000000, Slot: u64(slot), Epoch: u64(412), EpochSlot: u64(slot % 432000), Height: u64(slot / 20)}
}

func epochsOf(c *Core) []uint64 {
	var out []uint64
	for _, e := range c.epochCache.LastN(100) {
		out = append(out, e.Epoch)
	}
	return out
}

func TestMissingBlocks(t *testing.T) {
	persisted := map[string]struct{}{"A": {}, "B": {}}
	assert.Equal(t, []string{"C", "D"}, missingBlocks([]string{"A", "C", "B", "D", "C"}, persisted))
	assert.Empty(t, missingBlocks(nil, persisted))
	assert.Empty(t, missingBlocks([]string{"A", "B"}, persisted))
}

func TestReconcile_OnlyMissingBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{"A": {}, "B": {}}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "C").Return(block("C", 300), nil).Times(1)
	f.provider.EXPECT().GetBlock(gomock.Any(), "D").Return(block("D", 400), nil).Times(1)
	var (
		mu     sync.Mutex
		stored []model.Leaderlog
	)
	f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l model.Leaderlog) error {
		mu.Lock()
		defer mu.Unlock()
		stored = append(stored, l)
		return nil
	}).Times(2)

	res, err := f.core.reconcile(ctx, []string{"A", "B", "C", "D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Missing: 2, Added: 2}, res)
	require.Len(t, stored, 2)
	for _, l := range stored {
		require.NotNil(t, l.Hash)
		assert.Equal(t, int64(1685000000000), l.TimeMs)
	}

	// second pass finds everything persisted
	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{"A": {}, "B": {}, "C": {}, "D": {}}, nil)
	res, err = f.core.reconcile(ctx, []string{"A", "B", "C", "D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{}, res)
}

func TestReconcile_ReportsEveryFailure(t *testing.T) {
	f := newFixture(t)
	errC := errors.New("c unavailable")
	errD := errors.New("d unavailable")

	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "C").Return(model.Block{}, errC)
	f.provider.EXPECT().GetBlock(gomock.Any(), "D").Return(model.Block{}, errD)
	f.provider.EXPECT().GetBlock(gomock.Any(), "E").Return(block("E", 500), nil)
	f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.core.reconcile(context.Background(), []string{"C", "D", "E"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errC)
	assert.ErrorIs(t, err, errD)
	assert.Equal(t, ReconcileResult{Missing: 3, Added: 1}, res)
}

func TestReconcile_NotifiesAndWritesPoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	dbHandler := mocks.NewMockDatabaseHandler(ctrl)
	f := newFixture(t)
	f.core.notifier = notifier
	f.core.dbHandler = dbHandler

	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "C").Return(block("C", 300), nil)
	f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	dbHandler.EXPECT().WritePoint("Leaderlog", gomock.Any(), gomock.Any(), time.UnixMilli(1685000000000))
	notifier.EXPECT().LeaderlogAdded(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := f.core.reconcile(context.Background(), []string{"C"}, nil)
	require.NoError(t, err, "notification failures never fail reconciliation")
	assert.Equal(t, 1, res.Added)
}

func TestRefreshEpochs_Backfill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 413}, nil),
		f.provider.EXPECT().GetEpoch(gomock.Any(), "412").Return(model.Epoch{Epoch: 412}, nil),
		f.provider.EXPECT().GetEpoch(gomock.Any(), "411").Return(model.Epoch{Epoch: 411}, nil),
	)
	require.NoError(t, f.core.refreshEpochs(ctx))
	assert.Equal(t, []uint64{413, 412, 411}, epochsOf(f.core))

	// the window is complete, only latest is refreshed
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 413, BlockCount: 7}, nil)
	require.NoError(t, f.core.refreshEpochs(ctx))
	latest, ok := f.core.epochCache.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(7), latest.BlockCount)

	// epoch boundary: 411 falls out of the window
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 414}, nil)
	require.NoError(t, f.core.refreshEpochs(ctx))
	assert.Equal(t, []uint64{414, 413, 412}, epochsOf(f.core))
}

func TestRefreshEpochs_ClampsAtGenesis(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 1}, nil),
		f.provider.EXPECT().GetEpoch(gomock.Any(), "0").Return(model.Epoch{Epoch: 0}, nil),
	)
	require.NoError(t, f.core.refreshEpochs(context.Background()))
	assert.Equal(t, []uint64{1, 0}, epochsOf(f.core))
}

func TestRefreshEpochs_BackfillFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 413}, nil)
	f.provider.EXPECT().GetEpoch(gomock.Any(), "412").Return(model.Epoch{}, model.NewProviderError(http.StatusTooManyRequests, "rate limited", nil))

	err := f.core.refreshEpochs(context.Background())
	require.Error(t, err)
	assert.Equal(t, []uint64{413}, epochsOf(f.core), "latest stays committed")
}

func expectPool(f *fixture, blocks []string) {
	f.provider.EXPECT().GetPool(gomock.Any(), testPool).Return(model.Pool{PoolID: testPool}, nil)
	f.provider.EXPECT().GetPoolDelegators(gomock.Any(), testPool).Return([]model.Delegator{{Address: "stake1"}}, nil)
	f.provider.EXPECT().GetPoolHistory(gomock.Any(), testPool).Return([]model.PoolHistory{{Epoch: 412}}, nil)
	f.provider.EXPECT().GetPoolBlocks(gomock.Any(), testPool).Return(blocks, nil)
}

func TestCycle_AllStages(t *testing.T) {
	f := newFixture(t)
	f.core.tracker.runCounter.Store(1)

	f.provider.EXPECT().GetNetwork(gomock.Any()).Return(model.Network{Stake: model.Stake{Live: "1"}}, nil)
	f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{Symbol: "ADAUSDT", LastPrice: "0.3"}, nil)
	expectPool(f, []string{"A", "B"})
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 2}, nil)
	f.provider.EXPECT().GetEpoch(gomock.Any(), "1").Return(model.Epoch{Epoch: 1}, nil)
	f.provider.EXPECT().GetEpoch(gomock.Any(), "0").Return(model.Epoch{Epoch: 0}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "B").Return(block("B", 200), nil)
	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{"A": {}, "B": {}}, nil)

	res := f.core.Cycle(context.Background())
	require.True(t, res.Success, res.Err)
	assert.Equal(t, uint64(1), res.Run)

	assert.Equal(t, "0.3", f.core.Ticker().LastPrice)
	assert.Equal(t, "1", f.core.Network().Stake.Live)
	assert.Equal(t, testPool, f.core.Pool().PoolID)
	assert.Equal(t, []string{"A", "B"}, f.core.Blocks())
	require.NotNil(t, f.core.LastBlock())
	assert.Equal(t, "B", f.core.LastBlock().Hash)
	assert.Len(t, f.core.Epochs(), 3)
	assert.Len(t, f.core.PoolStats().Delegators, 1)
}

func TestCycle_NetworkThrottled(t *testing.T) {
	for _, run := range []uint64{2, 9, 11} {
		t.Run(strconv.FormatUint(run, 10), func(t *testing.T) {
			f := newFixture(t)
			f.core.tracker.runCounter.Store(run)
			f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{}, errors.New("stop here"))

			res := f.core.Cycle(context.Background())
			assert.Equal(t, StageTicker, res.FailedStage)
		})
	}

	f := newFixture(t)
	f.core.tracker.runCounter.Store(20)
	f.provider.EXPECT().GetNetwork(gomock.Any()).Return(model.Network{}, errors.New("stop here"))
	res := f.core.Cycle(context.Background())
	assert.Equal(t, StageNetwork, res.FailedStage)
}

func TestCycle_FailureAbortsRemainingStages(t *testing.T) {
	f := newFixture(t)
	f.core.tracker.runCounter.Store(2)

	f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{LastPrice: "0.3"}, nil)
	f.provider.EXPECT().GetPool(gomock.Any(), testPool).Return(model.Pool{}, model.NewProviderError(http.StatusBadGateway, "bad gateway", nil))

	res := f.core.Cycle(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, StagePool, res.FailedStage)
	var me *model.Error
	require.ErrorAs(t, res.Err, &me)
	assert.Equal(t, model.ProviderFetch, me.Kind)
	assert.Equal(t, StagePool, me.Stage)
	assert.Equal(t, http.StatusBadGateway, me.StatusCode)

	assert.Equal(t, "0.3", f.core.Ticker().LastPrice, "earlier stages stay committed")
	assert.Nil(t, f.core.Pool())
	assert.Empty(t, f.core.Epochs())
}

func TestCycle_LastBlockSkippedWithoutBlocks(t *testing.T) {
	f := newFixture(t)
	f.core.tracker.runCounter.Store(2)

	f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{}, nil)
	expectPool(f, nil)
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 0}, nil)
	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{}, nil)

	res := f.core.Cycle(context.Background())
	require.True(t, res.Success, res.Err)
	assert.Nil(t, f.core.LastBlock())
}

func TestCycle_NewLastBlockFetchedOnce(t *testing.T) {
	f := newFixture(t)
	f.core.tracker.runCounter.Store(2)

	f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{}, nil)
	expectPool(f, []string{"A", "B", "C"})
	f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 0}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "B").Return(block("B", 200), nil).Times(1)
	f.provider.EXPECT().GetBlock(gomock.Any(), "C").Return(block("C", 300), nil).Times(1)
	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{"A": {}}, nil)
	var (
		mu    sync.Mutex
		slots []uint64
	)
	f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l model.Leaderlog) error {
		mu.Lock()
		defer mu.Unlock()
		slots = append(slots, l.Slot)
		return nil
	}).Times(2)

	res := f.core.Cycle(context.Background())
	require.True(t, res.Success, res.Err)
	assert.Equal(t, ReconcileResult{Missing: 2, Added: 2}, res.Reconciled)
	assert.ElementsMatch(t, []uint64{200, 300}, slots)
	assert.Equal(t, "C", f.core.LastBlock().Hash)
}

func TestReconcile_UsesKnownLastBlock(t *testing.T) {
	f := newFixture(t)
	last := block("D", 400)

	f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{}, nil)
	f.provider.EXPECT().GetBlock(gomock.Any(), "C").Return(block("C", 300), nil)
	f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.core.reconcile(context.Background(), []string{"C", "D"}, &last)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Missing: 2, Added: 2}, res)
}

func TestCycle_ReconcileFailurePolicy(t *testing.T) {
	run := func(t *testing.T, counts bool) CycleResult {
		f := newFixture(t, func(c *config.Config) { c.Poll.ReconcileFailuresCount = counts })
		f.core.tracker.runCounter.Store(2)
		f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{}, nil)
		expectPool(f, []string{"A"})
		f.provider.EXPECT().GetEpoch(gomock.Any(), "latest").Return(model.Epoch{Epoch: 0}, nil)
		f.provider.EXPECT().GetBlock(gomock.Any(), "A").Return(block("A", 1), nil).Times(1)
		f.store.EXPECT().ListHashes(gomock.Any()).Return(map[string]struct{}{}, nil)
		f.store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(model.NewPersistenceError("insert leaderlog", errors.New("disk full")))
		return f.core.Cycle(context.Background())
	}

	t.Run("ignored", func(t *testing.T) {
		res := run(t, false)
		assert.True(t, res.Success)
		assert.Equal(t, ReconcileResult{Missing: 1}, res.Reconciled)
	})
	t.Run("counted", func(t *testing.T) {
		res := run(t, true)
		assert.False(t, res.Success)
		assert.Equal(t, StageReconcile, res.FailedStage)
		assert.Equal(t, model.Persistence, model.KindOf(res.Err))
	})
}

func TestAccessors_Empty(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.core.Ticker())
	assert.Nil(t, f.core.Network())
	assert.Nil(t, f.core.Pool())
	assert.Nil(t, f.core.LastBlock())
	assert.Empty(t, f.core.Blocks())
	assert.Empty(t, f.core.Epochs())
	assert.Equal(t, model.PoolSnapshot{}, f.core.Snapshot())
	assert.Equal(t, http.StatusOK, f.core.HealthStatus())
}

func TestLeaderlogs_View(t *testing.T) {
	f := newFixture(t)
	future := model.Leaderlog{Slot: 900, TimeMs: testNow.Add(26 * time.Hour).UnixMilli(), Epoch: 413, EpochSlot: 90, EpochSlotIdeal: 11.2}
	present := model.Leaderlog{Slot: 800, TimeMs: testNow.UnixMilli(), Epoch: 413, EpochSlot: 80, EpochSlotIdeal: 11.2}
	past := model.Leaderlog{Slot: 700, TimeMs: testNow.Add(-time.Hour).UnixMilli(), Epoch: 412, EpochSlot: 70, EpochSlotIdeal: 10.5}
	f.store.EXPECT().List(gomock.Any()).Return([]model.Leaderlog{future, present, past}, nil)

	views := f.core.Leaderlogs(context.Background())
	require.Len(t, views, 3)
	assert.Equal(t, model.LeaderlogView{Time: "2023-06-02", Epoch: 413, EpochSlotIdeal: 11.2}, views[0])
	assert.Equal(t, model.LeaderlogView{Time: "2023-06-01", Epoch: 413, EpochSlotIdeal: 11.2}, views[1])
	assert.Equal(t, "2023-06-01T11:00:00Z", views[2].Time)
	require.NotNil(t, views[2].Slot)
	assert.Equal(t, uint64(700), *views[2].Slot)
	assert.Equal(t, uint64(70), *views[2].EpochSlot)

	f.store.EXPECT().List(gomock.Any()).Return(nil, errors.New("db gone"))
	assert.Equal(t, []model.LeaderlogView{}, f.core.Leaderlogs(context.Background()))
}

func TestAddLeaderlogs(t *testing.T) {
	logs := []model.Leaderlog{{Slot: 1}, {Slot: 2}}

	f := newFixture(t)
	_, err := f.core.AddLeaderlogs(context.Background(), "wrong", logs)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	f.store.EXPECT().BulkInsert(gomock.Any(), logs).Return(1, nil)
	n, err := f.core.AddLeaderlogs(context.Background(), "secret", logs)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	open := newFixture(t, func(c *config.Config) { c.Server.APIKey = "" })
	_, err = open.core.AddLeaderlogs(context.Background(), "", logs)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestCycle_WritesPollCyclePoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	dbHandler := mocks.NewMockDatabaseHandler(ctrl)
	f := newFixture(t)
	f.core.dbHandler = dbHandler
	f.core.tracker.runCounter.Store(3)

	f.tickers.EXPECT().GetTicker(gomock.Any(), "ADAUSDT").Return(model.Ticker{}, errors.New("binance down"))
	gomock.InOrder(
		dbHandler.EXPECT().WritePoint("PollCycle", map[string]string{"pool": testPool, "failed_stage": StageTicker}, gomock.Any(), testNow),
		dbHandler.EXPECT().Flush(),
	)

	res := f.core.Cycle(context.Background())
	assert.False(t, res.Success)
}
