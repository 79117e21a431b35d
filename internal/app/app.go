package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/triage/internal/client"
	"github.com/five82/triage/internal/config"
	"github.com/five82/triage/internal/logging"
	"github.com/five82/triage/internal/prefs"
	"github.com/five82/triage/internal/session"
	"github.com/five82/triage/internal/state"
	"github.com/five82/triage/internal/ui"
)

// Options configure the triage application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/triage/prefs.toml
	Deadline   time.Duration // zero uses the config value
	LogPath    string        // empty uses the config value; "-" is stderr
}

// Run boots the triage TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Deadline > 0 {
		cfg.Deadline = opts.Deadline
	}
	if opts.LogPath != "" {
		cfg.LogFile = config.ResolveLogFile(opts.LogPath)
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("using default prefs", "error", err)
	}

	apiClient, err := client.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init triage client: %w", err)
	}
	logger.Info("starting", "api", apiClient.BaseURL(), "deadline", cfg.Deadline)

	store := state.NewStore()
	controller := session.NewController(apiClient, store, session.Options{
		Deadline: cfg.Deadline,
		Logger:   logger,
	})

	StartHealthProbe(ctx, apiClient, logger)

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: controller,
		Store:      store,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
	})
}
