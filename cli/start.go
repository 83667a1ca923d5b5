package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"poolwatch/api"
	"poolwatch/core"
)

var startCommand = &cobra.Command{
	Use:   "start",
	Short: "start polling and serving the pool state",
	Run:   start,
}

func init() {
	rootCmd.AddCommand(startCommand)
}

func start(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("starting poolwatch", "pool", cfg.Pool.Hash, "interval", cfg.Poll.Interval, "dev", cfg.Poll.Dev)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialise", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(a.core, a.metrics.Handler(), cfg.Server.Addr)
	scheduler := core.NewScheduler(a.core)
	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(serverCtx)
	})
	g.Go(func() error {
		defer stopServer()
		if err := scheduler.Run(gctx); err != nil {
			return err
		}
		// dev mode keeps serving the single cycle's results until signalled
		<-gctx.Done()
		slog.Info("waiting for the running cycle to finish")
		return scheduler.WaitIdle(context.Background())
	})
	err = g.Wait()
	a.Close()

	if err != nil {
		if errors.Is(err, core.ErrTooManyFailures) {
			slog.Error("Terminating after too many consecutive failures", "state", a.core.State())
		} else {
			slog.Error("poolwatch stopped", "error", err)
		}
		os.Exit(1)
	}
	slog.Info("poolwatch stopped")
}
