package main

import (
	"log/slog"
	"os"

	"poolwatch/cli"
)

var (
	version   string
	buildTime string
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime
	if err := cli.Execute(); err != nil {
		slog.Error("Unable to execute", "error", err)
		os.Exit(1)
	}
}
