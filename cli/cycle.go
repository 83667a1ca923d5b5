package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"poolwatch/core"
)

var cycleCommand = &cobra.Command{
	Use:   "cycle",
	Short: "run a single poll cycle and print the collected state",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			slog.Error("Invalid configuration", "error", err)
			os.Exit(1)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			slog.Error("Failed to initialise", "error", err)
			os.Exit(1)
		}
		defer a.Close()

		res, err := core.NewScheduler(a.core).RunOnce(ctx)
		if err != nil {
			a.Close()
			slog.Error("cycle not run", "error", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(map[string]interface{}{
			"run":         res.Run,
			"success":     res.Success,
			"failedStage": res.FailedStage,
			"duration":    res.Duration.String(),
			"reconciled":  res.Reconciled,
			"ticker":      a.core.Ticker(),
			"pool":        a.core.Pool(),
			"epochs":      a.core.Epochs(),
			"lastBlock":   a.core.LastBlock(),
		}, "", "  ")
		fmt.Println(string(out))
		if !res.Success {
			a.Close()
			slog.Error("cycle failed", "stage", res.FailedStage, "error", res.Err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cycleCommand)
}
