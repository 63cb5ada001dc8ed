package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FeedDigest/internal/config"
	"FeedDigest/internal/infrastructure/llm"
	"FeedDigest/internal/infrastructure/scheduler"
	"FeedDigest/internal/infrastructure/storage"
	"FeedDigest/internal/infrastructure/telegram"
	"FeedDigest/internal/logging"
	"FeedDigest/internal/ports"
	"FeedDigest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	repo      *storage.SQLiteRepository
	processor *usecase.Processor
	notifier  ports.Notifier
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repo, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	newChatClient := func(settings config.DigestSettings) ports.ChatClient {
		return llm.NewClient(settings, baseLogger.With("component", "llm"))
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	processor := usecase.NewProcessor(usecase.ProcessorDeps{
		Entries:       repo,
		Feeds:         repo,
		Settings:      repo,
		NewChatClient: newChatClient,
		Logger:        baseLogger.With("component", "processor"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		repo:      repo,
		processor: processor,
		notifier:  notifier,
	}, nil
}

// Run executes one maintenance run, or keeps running on an interval when
// the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if !a.cfg.Scheduler.Enabled {
		return a.runOnce(ctx)
	}

	interval, err := time.ParseDuration(a.cfg.Scheduler.Interval)
	if err != nil {
		a.logger.Warn("invalid scheduler interval, using 1h", "interval", a.cfg.Scheduler.Interval)
		interval = time.Hour
	}

	driver := scheduler.NewIntervalScheduler(interval)
	sched := usecase.NewScheduler(driver, a.runOnce)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	return a.repo.Close()
}

func (a *Application) runOnce(ctx context.Context) error {
	stats, err := a.processor.Run(ctx)
	if err != nil {
		a.logger.Error("maintenance run failed", "error", err)
		return err
	}

	a.logger.Info("maintenance run finished",
		"feeds", stats.Feeds,
		"batches", stats.Batches,
		"failed_batches", stats.FailedBatches,
		"artifacts", stats.Artifacts,
		"entries_processed", stats.EntriesProcessed)

	if a.notifier != nil {
		report := fmt.Sprintf("Digest run: %d feeds, %d batches (%d failed), %d artifacts, %d entries processed",
			stats.Feeds, stats.Batches, stats.FailedBatches, stats.Artifacts, stats.EntriesProcessed)
		if nErr := a.notifier.PublishReport(ctx, report); nErr != nil {
			a.logger.Warn("publish run report", "error", nErr)
		}
	}

	return nil
}
