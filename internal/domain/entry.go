package domain

import "time"

// Entry is a single feed item as stored by the reader.
type Entry struct {
	ID          int64
	GUID        string
	Hash        string
	Title       string
	Content     string
	URL         string
	Author      string
	PublishedAt time.Time
	SeenAt      time.Time
	Read        bool
	FeedID      int64
	Tags        []string
}

// Feed describes a subscription together with the digest attributes this
// system owns.
type Feed struct {
	ID            int64
	Title         string
	Description   string
	SiteURL       string
	DigestEnabled bool
	BatchSize     int
}

// SummaryResult is one model-produced element: translated title, summary
// text, and (translate mode only) an optional fully translated body. A nil
// TranslatedContent means the source was already in the destination
// language and the original body is kept.
type SummaryResult struct {
	Title             string
	Summary           string
	TranslatedContent *string
}

// VerdictKind enumerates classification outcomes for one entry.
type VerdictKind int

const (
	// VerdictEligible marks an entry that may enter a batch.
	VerdictEligible VerdictKind = iota
	// VerdictArtifact marks an entry this system created earlier.
	VerdictArtifact
	// VerdictAlreadyProcessed marks an entry carrying a system marker.
	VerdictAlreadyProcessed
	// VerdictSkip marks an entry not worth condensing; Reason says why.
	VerdictSkip
)

// Verdict is the result of classifying a single entry.
type Verdict struct {
	Kind   VerdictKind
	Reason string
}
