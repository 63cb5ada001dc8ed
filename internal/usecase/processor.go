package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"FeedDigest/internal/config"
	"FeedDigest/internal/digest"
	"FeedDigest/internal/domain"
	"FeedDigest/internal/ports"
)

// fetchLimit caps how many unread entries one run pulls per feed.
const fetchLimit = 200

// RunStats aggregates the outcome of one maintenance run.
type RunStats struct {
	Feeds            int
	Batches          int
	FailedBatches    int
	Artifacts        int
	EntriesProcessed int
}

// ProcessorDeps wires the driven adapters into the digest pipeline.
type ProcessorDeps struct {
	Entries       ports.EntryRepository
	Feeds         ports.FeedRepository
	Settings      ports.SettingsStore
	NewChatClient func(config.DigestSettings) ports.ChatClient
	Logger        *slog.Logger
}

// Processor drives the per-feed pipeline: fetch unread, classify, batch,
// prompt the model, validate, write artifacts, commit read state.
type Processor struct {
	entries       ports.EntryRepository
	feeds         ports.FeedRepository
	settings      ports.SettingsStore
	newChatClient func(config.DigestSettings) ports.ChatClient
	logger        *slog.Logger
}

// NewProcessor constructs the orchestration component.
func NewProcessor(deps ProcessorDeps) *Processor {
	return &Processor{
		entries:       deps.Entries,
		feeds:         deps.Feeds,
		settings:      deps.Settings,
		newChatClient: deps.NewChatClient,
		logger:        deps.Logger,
	}
}

// Run processes every digest-enabled feed once. A feed's failure is logged
// and never stops the remaining feeds. The whole run is skipped without
// error when no API key is configured.
func (p *Processor) Run(ctx context.Context) (RunStats, error) {
	settings, err := p.loadSettings(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("load settings: %w", err)
	}

	if settings.APIKey == "" {
		p.info("no API key configured, skipping run")
		return RunStats{}, nil
	}

	chat := p.newChatClient(settings)

	feeds, err := p.feeds.ListFeeds(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("list feeds: %w", err)
	}

	var stats RunStats
	for _, feed := range feeds {
		if !feed.DigestEnabled {
			continue
		}

		if err := p.processFeed(ctx, feed, settings, chat, &stats); err != nil {
			p.error("process feed", "feed", feed.Title, "error", err)
			continue
		}
		stats.Feeds++
	}

	return stats, nil
}

// loadSettings reads the key-value store once per run and applies defaults
// and clamping.
func (p *Processor) loadSettings(ctx context.Context) (config.DigestSettings, error) {
	read := func(key string) (string, error) {
		value, err := p.settings.Get(ctx, key)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", key, err)
		}
		return value, nil
	}

	endpoint, err := read(config.KeyAPIEndpoint)
	if err != nil {
		return config.DigestSettings{}, err
	}
	apiKey, err := read(config.KeySecretKey)
	if err != nil {
		return config.DigestSettings{}, err
	}
	model, err := read(config.KeyModel)
	if err != nil {
		return config.DigestSettings{}, err
	}
	language, err := read(config.KeyDestLanguage)
	if err != nil {
		return config.DigestSettings{}, err
	}
	rawLen, err := read(config.KeyMaxContentLength)
	if err != nil {
		return config.DigestSettings{}, err
	}

	maxLen := 0
	if rawLen != "" {
		maxLen, err = strconv.Atoi(rawLen)
		if err != nil {
			p.warn("invalid max_content_length, using default", "value", rawLen)
			maxLen = 0
		}
	}

	return config.NewDigestSettings(endpoint, apiKey, model, language, maxLen), nil
}

func (p *Processor) processFeed(ctx context.Context, feed domain.Feed, settings config.DigestSettings, chat ports.ChatClient, stats *RunStats) error {
	batchSize := feed.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	entries, err := p.entries.ListUnread(ctx, feed.ID, fetchLimit)
	if err != nil {
		return fmt.Errorf("list unread: %w", err)
	}

	var eligible []domain.Entry
	skipped := 0
	for _, entry := range entries {
		verdict := digest.Classify(entry)
		switch verdict.Kind {
		case domain.VerdictEligible:
			eligible = append(eligible, entry)
		case domain.VerdictSkip:
			skipped++
			// Annotation is committed right away so skipped entries are
			// visibly marked even when no batch fires this run.
			if digest.AnnotateSkip(&entry, verdict.Reason) {
				if uErr := p.entries.UpdateEntry(ctx, entry); uErr != nil {
					p.warn("annotate skipped entry", "feed", feed.Title, "entry", entry.ID, "error", uErr)
				}
			}
		}
	}

	batches, remainder := digest.MakeBatches(eligible, batchSize)
	if len(batches) == 0 {
		p.info("not enough eligible entries for a batch",
			"feed", feed.Title, "eligible", len(eligible), "batch_size", batchSize, "skipped", skipped)
		return nil
	}

	processed := 0
	for i, batch := range batches {
		if err := p.processBatch(ctx, feed, batch, batchSize == 1, settings, chat); err != nil {
			stats.FailedBatches++
			p.error("batch abandoned", "feed", feed.Title, "batch", i+1, "size", len(batch), "error", err)
			continue
		}
		stats.Batches++
		stats.Artifacts++
		processed += len(batch)
	}
	stats.EntriesProcessed += processed

	p.info("feed done",
		"feed", feed.Title,
		"processed", processed,
		"batches", len(batches),
		"awaiting_batch", len(remainder),
		"skip_annotated", skipped)
	return nil
}

// processBatch runs one model call and materializes its artifact. The
// artifact insert must succeed before the originals are marked read; a
// failed insert leaves the batch unread for a blind retry next run.
func (p *Processor) processBatch(ctx context.Context, feed domain.Feed, batch []domain.Entry, translate bool, settings config.DigestSettings, chat ports.ChatClient) error {
	var artifact domain.Entry

	if translate {
		system, user, err := digest.BuildTranslationPrompt(feed, batch[0], settings)
		if err != nil {
			return fmt.Errorf("build prompt: %w", err)
		}

		raw, err := chat.Complete(ctx, system, user)
		if err != nil {
			return fmt.Errorf("complete: %w", err)
		}

		result, err := digest.ParseTranslation(raw)
		if err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		artifact = digest.BuildTranslationEntry(feed, batch[0], result, time.Now())
	} else {
		system, user, err := digest.BuildSummaryPrompt(feed, batch, settings)
		if err != nil {
			return fmt.Errorf("build prompt: %w", err)
		}

		raw, err := chat.Complete(ctx, system, user)
		if err != nil {
			return fmt.Errorf("complete: %w", err)
		}

		results, err := digest.ParseSummaries(raw, len(batch))
		if err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		artifact = digest.BuildSummaryEntry(feed, batch, results, time.Now())
	}

	if err := p.entries.InsertEntry(ctx, artifact); err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}

	ids := make([]int64, 0, len(batch))
	for _, entry := range batch {
		ids = append(ids, entry.ID)
	}

	if err := p.entries.MarkRead(ctx, ids); err != nil {
		// The artifact exists; the marker checks keep the unread shadow
		// from being reprocessed, so this is not a batch failure.
		p.warn("mark entries read", "feed", feed.Title, "error", err)
	}

	return nil
}

func (p *Processor) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Processor) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Processor) error(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
