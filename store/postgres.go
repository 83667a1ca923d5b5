package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"poolwatch/model"
)

// PgStore implements interfaces.BlockStore on PostgreSQL through a pgx pool.
type PgStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS leaderlogs (
    id                BIGSERIAL PRIMARY KEY,
    hash              TEXT UNIQUE,
    slot              BIGINT NOT NULL UNIQUE,
    time_ms           BIGINT NOT NULL,
    height            BIGINT,
    epoch             BIGINT NOT NULL,
    epoch_slot        BIGINT NOT NULL,
    epoch_slot_ideal  DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_leaderlogs_time ON leaderlogs(time_ms);
`

// NewPgStore connects to PostgreSQL and ensures the schema exists.
func NewPgStore(ctx context.Context, url string) (*PgStore, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, model.NewConfigurationError(fmt.Sprintf("parse store url: %v", err))
	}

	// Connection pool settings
	config.MinConns = 1
	config.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, model.NewPersistenceError("create pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, model.NewPersistenceError("ping", err)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, model.NewPersistenceError("creating postgres schema", err)
	}

	slog.Info("PostgreSQL database connected", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)
	return &PgStore{pool: pool}, nil
}

func (s *PgStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PgStore) ListHashes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT hash FROM leaderlogs WHERE hash IS NOT NULL`)
	if err != nil {
		return nil, model.NewPersistenceError("list hashes", err)
	}
	defer rows.Close()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, model.NewPersistenceError("scan hash", err)
		}
		hashes[hash] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewPersistenceError("list hashes", err)
	}
	return hashes, nil
}

// Upsert writes l keyed on slot. A row holding the same hash under another slot, left behind
// by a rollback, is removed first.
func (s *PgStore) Upsert(ctx context.Context, l model.Leaderlog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.NewPersistenceError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if l.Hash != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM leaderlogs WHERE hash = $1 AND slot <> $2`, *l.Hash, int64(l.Slot)); err != nil {
			return model.NewPersistenceError(fmt.Sprintf("upsert slot %d", l.Slot), err)
		}
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO leaderlogs (hash, slot, time_ms, height, epoch, epoch_slot, epoch_slot_ideal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (slot) DO UPDATE SET
		   hash = EXCLUDED.hash,
		   time_ms = EXCLUDED.time_ms,
		   height = EXCLUDED.height,
		   epoch = EXCLUDED.epoch,
		   epoch_slot = EXCLUDED.epoch_slot,
		   updated_at = now()`,
		nullableHash(l.Hash), int64(l.Slot), l.TimeMs, nullableHeight(l.Height),
		int64(l.Epoch), int64(l.EpochSlot), l.EpochSlotIdeal,
	)
	if err != nil {
		return model.NewPersistenceError(fmt.Sprintf("upsert slot %d", l.Slot), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return model.NewPersistenceError("commit", err)
	}
	return nil
}

func (s *PgStore) BulkInsert(ctx context.Context, logs []model.Leaderlog) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, model.NewPersistenceError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, l := range logs {
		tag, err := tx.Exec(ctx,
			`INSERT INTO leaderlogs (hash, slot, time_ms, height, epoch, epoch_slot, epoch_slot_ideal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (slot) DO NOTHING`,
			nullableHash(l.Hash), int64(l.Slot), l.TimeMs, nullableHeight(l.Height),
			int64(l.Epoch), int64(l.EpochSlot), l.EpochSlotIdeal,
		)
		if err != nil {
			return 0, model.NewPersistenceError(fmt.Sprintf("insert slot %d", l.Slot), err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, model.NewPersistenceError("commit", err)
	}
	return inserted, nil
}

// List returns every leaderlog, most recent first.
func (s *PgStore) List(ctx context.Context) ([]model.Leaderlog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT hash, slot, time_ms, height, epoch, epoch_slot, epoch_slot_ideal
		 FROM leaderlogs ORDER BY time_ms DESC`)
	if err != nil {
		return nil, model.NewPersistenceError("list leaderlogs", err)
	}
	defer rows.Close()

	logs := make([]model.Leaderlog, 0)
	for rows.Next() {
		var (
			l      model.Leaderlog
			height *int64
			slot   int64
			epoch  int64
			eslot  int64
		)
		if err := rows.Scan(&l.Hash, &slot, &l.TimeMs, &height, &epoch, &eslot, &l.EpochSlotIdeal); err != nil {
			return nil, model.NewPersistenceError("scan leaderlog", err)
		}
		if height != nil {
			h := uint64(*height)
			l.Height = &h
		}
		l.Slot, l.Epoch, l.EpochSlot = uint64(slot), uint64(epoch), uint64(eslot)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewPersistenceError("list leaderlogs", err)
	}
	return logs, nil
}
