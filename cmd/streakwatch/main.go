// Command streakwatch runs one check of the tracked league: it acquires the
// season's results from the best available source, folds the no-draw streak,
// and sends a Telegram alert when the configured threshold is crossed.
//
// The binary is designed to be invoked by an external scheduler (cron, CI
// job); it does one run and exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	appcfg "streakwatch/internal/config"
	"streakwatch/internal/infra/fetcher"
	"streakwatch/internal/infra/notifier"
	"streakwatch/internal/observability/logging"
	"streakwatch/internal/source"
	"streakwatch/internal/state"
	"streakwatch/internal/usecase/acquire"
	"streakwatch/internal/usecase/notify"
	"streakwatch/internal/usecase/run"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		slog.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	logger, _ := logging.WithRunID(initLogger(cfg))
	slog.SetDefault(logger)
	logger.Info("streakwatch starting",
		slog.String("league", cfg.LeagueName),
		slog.Int("threshold", cfg.Threshold),
		slog.String("alert_mode", string(cfg.AlertMode)),
		slog.Bool("dry_run", cfg.DryRun))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := initStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("state store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	channel, err := initChannel(cfg, logger)
	if err != nil {
		logger.Error("notification channel init failed", slog.Any("error", err))
		os.Exit(1)
	}

	fetchClient := fetcher.New(fetcher.Config{
		Timeout:     cfg.FetchTimeout,
		MaxAttempts: cfg.FetchMaxAttempts,
		BackoffBase: cfg.FetchBackoffBase,
	})

	acquireSvc := acquire.NewService(
		source.NewResolver(cfg.SourceConfig()),
		fetchClient,
		acquire.Config{
			LeagueName:             cfg.LeagueName,
			ScrapeFallbackDisabled: cfg.APIFallbackDisabled,
		},
		logger,
	)

	runSvc := run.NewService(
		store,
		acquireSvc,
		notify.NewService(channel, logger),
		run.Config{
			LeagueName:     cfg.LeagueName,
			Alert:          cfg.AlertConfig(),
			MinRunInterval: cfg.MinRunInterval,
			ForceRebuild:   cfg.ForceRebuild,
		},
		logger,
	)

	if err := runSvc.Run(ctx); err != nil {
		logger.Error("run failed", slog.Any("error", err))
		cleanup()
		os.Exit(1)
	}

	logger.Info("run finished")
}

func initLogger(cfg *appcfg.Config) *slog.Logger {
	if cfg.LogFormat == "text" {
		return logging.NewTextLogger()
	}
	return logging.NewLogger()
}

// initStore selects the state backend: Postgres when a DSN is configured,
// a local JSON file otherwise.
func initStore(ctx context.Context, cfg *appcfg.Config, logger *slog.Logger) (state.Store, func(), error) {
	if cfg.StateDSN == "" {
		logger.Info("using file state store", slog.String("path", cfg.StatePath))
		return state.NewFileStore(cfg.StatePath), func() {}, nil
	}

	db, err := state.OpenPostgres(ctx, cfg.StateDSN)
	if err != nil {
		return nil, nil, err
	}
	store := state.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	logger.Info("using postgres state store")
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
	return store, cleanup, nil
}

// initChannel selects the delivery channel. Dry run always wins, so a
// misconfigured production environment cannot alert by accident while
// testing.
func initChannel(cfg *appcfg.Config, logger *slog.Logger) (notifier.Notifier, error) {
	if cfg.DryRun {
		logger.Info("dry run: notifications will be logged, not sent")
		return notifier.NewDryRunNotifier(), nil
	}
	if cfg.TelegramConfigured() {
		return notifier.NewTelegramNotifier(notifier.TelegramConfig{
			Token:  cfg.TelegramToken,
			ChatID: cfg.TelegramChatID,
		})
	}
	logger.Warn("no telegram credentials, notifications disabled")
	return notifier.NewNoOpNotifier(), nil
}
