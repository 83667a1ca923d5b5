package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolwatch/config"
	"poolwatch/model"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	s, err := NewSqliteStore(filepath.Join(t.TempDir(), "leaderlogs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func u64Ptr(v uint64) *uint64 { return &v }

func TestSqliteStore_UpsertAndListHashes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hashes, err := s.ListHashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hashes)

	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("A"), Slot: 100, TimeMs: 1000, Epoch: 410, EpochSlot: 10, Height: u64Ptr(5)}))
	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("B"), Slot: 200, TimeMs: 2000, Epoch: 410, EpochSlot: 20}))
	// same slot again only updates
	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("B"), Slot: 200, TimeMs: 2000, Epoch: 410, EpochSlot: 20, Height: u64Ptr(6)}))

	hashes, err = s.ListHashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}}, hashes)

	logs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, uint64(200), logs[0].Slot)
	require.NotNil(t, logs[0].Height)
	assert.Equal(t, uint64(6), *logs[0].Height)
}

func TestSqliteStore_UpsertFillsPlannedSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.BulkInsert(ctx, []model.Leaderlog{
		{Slot: 300, TimeMs: 3000, Epoch: 411, EpochSlot: 30, EpochSlotIdeal: 12.5},
		{Slot: 400, TimeMs: 4000, Epoch: 411, EpochSlot: 40, EpochSlotIdeal: 12.5},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	hashes, err := s.ListHashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hashes, "planned slots carry no hash")

	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("C"), Slot: 300, TimeMs: 3000, Epoch: 411, EpochSlot: 30}))

	logs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	minted := logs[1]
	require.NotNil(t, minted.Hash)
	assert.Equal(t, "C", *minted.Hash)
	assert.Equal(t, 12.5, minted.EpochSlotIdeal, "minting keeps the planned ideal slot count")
	assert.Nil(t, logs[0].Hash)
}

func TestSqliteStore_UpsertHashMovedToAnotherSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("X"), Slot: 100, TimeMs: 1000, Epoch: 410, EpochSlot: 10}))
	_, err := s.BulkInsert(ctx, []model.Leaderlog{{Slot: 101, TimeMs: 1001, Epoch: 410, EpochSlot: 11, EpochSlotIdeal: 9.5}})
	require.NoError(t, err)

	require.NoError(t, s.Upsert(ctx, model.Leaderlog{Hash: strPtr("X"), Slot: 101, TimeMs: 1001, Epoch: 410, EpochSlot: 11}))

	logs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, uint64(101), logs[0].Slot)
	require.NotNil(t, logs[0].Hash)
	assert.Equal(t, "X", *logs[0].Hash)
	assert.Equal(t, 9.5, logs[0].EpochSlotIdeal)

	hashes, err := s.ListHashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"X": {}}, hashes)
}

func TestSqliteStore_BulkInsertSkipsExistingSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.BulkInsert(ctx, []model.Leaderlog{{Slot: 1, TimeMs: 1, Epoch: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.BulkInsert(ctx, []model.Leaderlog{{Slot: 1, TimeMs: 1, Epoch: 1}, {Slot: 2, TimeMs: 2, Epoch: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.NoError(t, s.Close())

	_, err = Open(context.Background(), config.StoreConfig{Driver: "mariadb"})
	assert.Equal(t, model.Configuration, model.KindOf(err))
}
