package cli

import (
	"context"
	"log/slog"

	"poolwatch/config"
	"poolwatch/core"
	"poolwatch/db"
	"poolwatch/events"
	"poolwatch/interfaces"
	"poolwatch/metrics"
	"poolwatch/net"
	"poolwatch/store"
)

type app struct {
	core      *core.Core
	metrics   *metrics.Metrics
	store     interfaces.BlockStore
	dbHandler interfaces.DatabaseHandler
	notifier  interfaces.Notifier
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	notifier, err := events.NewPublisher(cfg.Redis)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a := &app{
		metrics:   metrics.New(),
		store:     st,
		dbHandler: db.NewHandler(cfg.InfluxDB),
		notifier:  notifier,
	}
	blockfrost := net.NewBlockfrost(net.NewConnectionPool(cfg.Blockfrost.URLs, cfg.Net.Timeout), cfg.Blockfrost.APIKey, cfg.Blockfrost.MaxPages)
	binance := net.NewBinance(net.NewConnectionPool(cfg.Binance.URLs, cfg.Net.Timeout))
	a.core = core.New(cfg, blockfrost, binance, st,
		core.WithMetrics(a.metrics),
		core.WithDatabaseHandler(a.dbHandler),
		core.WithNotifier(a.notifier),
	)
	return a, nil
}

func (a *app) Close() {
	if a.dbHandler != nil {
		a.dbHandler.Close()
	}
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			slog.Warn("failed to close notifier", "error", err)
		}
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}
