package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/triage/internal/config"
	"github.com/five82/triage/internal/logging"
	"github.com/five82/triage/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override triage config path (optional)")
	addr := flag.String("addr", "", "listen address (optional, defaults to :8000)")
	model := flag.String("model", "", "Ollama model (optional, defaults to tinyllama)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serve(ctx, *configPath, *addr, *model); err != nil {
		fmt.Fprintf(os.Stderr, "triaged: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, configPath, addr, model string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if model != "" {
		cfg.Server.Model = model
	}

	logger, closeLog, err := logging.New(logging.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	gen, err := server.NewOllama(cfg.Server.OllamaHost, cfg.Server.Model)
	if err != nil {
		return err
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	if err := gen.Ping(pingCtx); err != nil {
		logger.Warn("ollama not reachable; requests will fail until it starts", "error", err)
	}
	cancelPing()

	srv, err := server.New(gen, server.Options{Model: gen.Model(), Logger: logger})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
