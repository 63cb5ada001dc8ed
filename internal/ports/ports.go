package ports

import (
	"context"
	"time"

	"FeedDigest/internal/domain"
)

// EntryRepository exposes the reader's entry table.
type EntryRepository interface {
	ListUnread(ctx context.Context, feedID int64, limit int) ([]domain.Entry, error)
	InsertEntry(ctx context.Context, entry domain.Entry) error
	UpdateEntry(ctx context.Context, entry domain.Entry) error
	MarkRead(ctx context.Context, ids []int64) error
}

// FeedRepository lists subscriptions with their digest attributes.
type FeedRepository interface {
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
}

// SettingsStore is the reader's key-value configuration surface. Get
// returns an empty string for absent keys.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// ChatClient issues completion calls against an LLM API.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	TestConnection(ctx context.Context) error
}

// Notifier publishes run reports to an external channel.
type Notifier interface {
	PublishReport(ctx context.Context, report string) error
}

// Scheduler controls when maintenance runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
