package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"FeedDigest/internal/domain"
	"FeedDigest/internal/ports"
)

const defaultBatchSize = 10

// SQLiteRepository persists entries, feeds and settings in the reader's
// SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.EntryRepository = (*SQLiteRepository)(nil)
var _ ports.FeedRepository = (*SQLiteRepository)(nil)
var _ ports.SettingsStore = (*SQLiteRepository)(nil)

// Open creates the repository, applying the schema when absent. Uses WAL
// for file-backed databases; ":memory:" gets a single shared connection.
func Open(path string) (*SQLiteRepository, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return r, nil
}

// Close releases the underlying connection pool.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feeds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		site_url TEXT,
		digest_enabled INTEGER DEFAULT 0,
		digest_batch_size INTEGER DEFAULT 10
	);

	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT NOT NULL UNIQUE,
		hash TEXT,
		title TEXT NOT NULL,
		content TEXT,
		url TEXT,
		author TEXT,
		published_at DATETIME NOT NULL,
		seen_at DATETIME NOT NULL,
		read INTEGER DEFAULT 0,
		feed_id INTEGER NOT NULL,
		tags TEXT,
		FOREIGN KEY (feed_id) REFERENCES feeds(id)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_feed_read ON entries(feed_id, read);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

var entryColumns = []string{
	"id", "guid", "hash", "title", "content", "url", "author",
	"published_at", "seen_at", "read", "feed_id", "tags",
}

// ListUnread returns up to limit unread entries of a feed in ascending
// insertion order.
func (r *SQLiteRepository) ListUnread(ctx context.Context, feedID int64, limit int) ([]domain.Entry, error) {
	query, args, err := sq.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"feed_id": feedID, "read": 0}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unread: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return entries, nil
}

// InsertEntry stores a new entry; the id column is assigned by the
// database.
func (r *SQLiteRepository) InsertEntry(ctx context.Context, entry domain.Entry) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("entries").
		Columns("guid", "hash", "title", "content", "url", "author",
			"published_at", "seen_at", "read", "feed_id", "tags").
		Values(entry.GUID, entry.Hash, entry.Title, entry.Content, entry.URL, entry.Author,
			entry.PublishedAt, entry.SeenAt, entry.Read, entry.FeedID, tags).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	return nil
}

// UpdateEntry rewrites the mutable columns of an existing entry.
func (r *SQLiteRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	query, args, err := sq.Update("entries").
		Set("title", entry.Title).
		Set("content", entry.Content).
		Set("hash", entry.Hash).
		Set("seen_at", entry.SeenAt).
		Set("read", entry.Read).
		Set("tags", tags).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update entry %d: %w", entry.ID, err)
	}

	return nil
}

// MarkRead flips the read flag for the given entry ids in one statement.
func (r *SQLiteRepository) MarkRead(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Update("entries").
		Set("read", 1).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	return nil
}

// ListFeeds returns all subscriptions. The digest batch size is validated
// at this boundary: values below 1 fall back to the default of 10.
func (r *SQLiteRepository) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	query, args, err := sq.Select("id", "title", "description", "site_url",
		"digest_enabled", "digest_batch_size").
		From("feeds").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feeds: %w", err)
	}
	defer rows.Close()

	var feeds []domain.Feed
	for rows.Next() {
		var feed domain.Feed
		if err := rows.Scan(&feed.ID, &feed.Title, &feed.Description, &feed.SiteURL,
			&feed.DigestEnabled, &feed.BatchSize); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		if feed.BatchSize < 1 {
			feed.BatchSize = defaultBatchSize
		}
		feeds = append(feeds, feed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return feeds, nil
}

// SaveFeed inserts a subscription and returns its assigned id.
func (r *SQLiteRepository) SaveFeed(ctx context.Context, feed domain.Feed) (int64, error) {
	query, args, err := sq.Insert("feeds").
		Columns("title", "description", "site_url", "digest_enabled", "digest_batch_size").
		Values(feed.Title, feed.Description, feed.SiteURL, feed.DigestEnabled, feed.BatchSize).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("feed id: %w", err)
	}

	return id, nil
}

// Get returns the stored value for a settings key, or "" when absent.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}

	return value, nil
}

// Set upserts a settings key.
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}

	return nil
}

func scanEntry(rows *sql.Rows) (domain.Entry, error) {
	var entry domain.Entry
	var tags sql.NullString

	if err := rows.Scan(&entry.ID, &entry.GUID, &entry.Hash, &entry.Title, &entry.Content,
		&entry.URL, &entry.Author, &entry.PublishedAt, &entry.SeenAt,
		&entry.Read, &entry.FeedID, &tags); err != nil {
		return domain.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &entry.Tags); err != nil {
			return domain.Entry{}, fmt.Errorf("decode tags of entry %d: %w", entry.ID, err)
		}
	}

	return entry, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}

	return string(raw), nil
}
