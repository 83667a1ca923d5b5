package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"poolwatch/model"
)

// SqliteStore implements interfaces.BlockStore using SQLite via modernc.org/sqlite (pure Go, no CGO).
type SqliteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS leaderlogs (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    hash              TEXT UNIQUE,
    slot              INTEGER NOT NULL UNIQUE,
    time_ms           INTEGER NOT NULL,
    height            INTEGER,
    epoch             INTEGER NOT NULL,
    epoch_slot        INTEGER NOT NULL,
    epoch_slot_ideal  REAL NOT NULL DEFAULT 0,
    created_at        TEXT DEFAULT (datetime('now')),
    updated_at        TEXT DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_leaderlogs_time ON leaderlogs(time_ms);
`

// NewSqliteStore opens (or creates) a SQLite database at the given path.
func NewSqliteStore(path string) (*SqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, model.NewPersistenceError("opening sqlite", err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, model.NewPersistenceError("pinging sqlite", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, model.NewPersistenceError("creating sqlite schema", err)
	}

	slog.Info("SQLite database opened", "path", path)
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) ListHashes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT hash FROM leaderlogs WHERE hash IS NOT NULL`)
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
func (s *SqliteStore) Upsert(ctx context.Context, l model.Leaderlog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.NewPersistenceError("begin tx", err)
	}
	defer tx.Rollback()

	if l.Hash != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM leaderlogs WHERE hash = ? AND slot <> ?`, *l.Hash, int64(l.Slot)); err != nil {
			return model.NewPersistenceError(fmt.Sprintf("upsert slot %d", l.Slot), err)
		}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO leaderlogs (hash, slot, time_ms, height, epoch, epoch_slot, epoch_slot_ideal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (slot) DO UPDATE SET
		   hash = excluded.hash,
		   time_ms = excluded.time_ms,
		   height = excluded.height,
		   epoch = excluded.epoch,
		   epoch_slot = excluded.epoch_slot,
		   updated_at = datetime('now')`,
		nullableHash(l.Hash), int64(l.Slot), l.TimeMs, nullableHeight(l.Height),
		int64(l.Epoch), int64(l.EpochSlot), l.EpochSlotIdeal,
	)
	if err != nil {
		return model.NewPersistenceError(fmt.Sprintf("upsert slot %d", l.Slot), err)
	}
	if err := tx.Commit(); err != nil {
		return model.NewPersistenceError("commit", err)
	}
	return nil
}

func (s *SqliteStore) BulkInsert(ctx context.Context, logs []model.Leaderlog) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, model.NewPersistenceError("begin tx", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leaderlogs (hash, slot, time_ms, height, epoch, epoch_slot, epoch_slot_ideal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (slot) DO NOTHING`,
	)
	if err != nil {
		return 0, model.NewPersistenceError("prepare", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, l := range logs {
		result, err := stmt.ExecContext(ctx, nullableHash(l.Hash), int64(l.Slot), l.TimeMs, nullableHeight(l.Height),
			int64(l.Epoch), int64(l.EpochSlot), l.EpochSlotIdeal)
		if err != nil {
			return 0, model.NewPersistenceError(fmt.Sprintf("insert slot %d", l.Slot), err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, model.NewPersistenceError("rows affected", err)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, model.NewPersistenceError("commit", err)
	}
	return inserted, nil
}

// List returns every leaderlog, most recent first.
func (s *SqliteStore) List(ctx context.Context) ([]model.Leaderlog, error) {
	rows, err := s.db.QueryContext(ctx,
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
			hash   sql.NullString
			height sql.NullInt64
			slot   int64
			epoch  int64
			eslot  int64
		)
		if err := rows.Scan(&hash, &slot, &l.TimeMs, &height, &epoch, &eslot, &l.EpochSlotIdeal); err != nil {
			return nil, model.NewPersistenceError("scan leaderlog", err)
		}
		if hash.Valid {
			h := hash.String
			l.Hash = &h
		}
		if height.Valid {
			h := uint64(height.Int64)
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
