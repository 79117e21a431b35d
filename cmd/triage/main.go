package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/triage/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override triage config path (optional)")
	deadline := flag.Duration("deadline", 0, "per-request deadline (optional, defaults to 30s)")
	logPath := flag.String("log", "", `log file path, "-" for stderr (optional)`)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Deadline:   *deadline,
		LogPath:    *logPath,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "triage: %v\n", err)
		return 1
	}
	return 0
}
