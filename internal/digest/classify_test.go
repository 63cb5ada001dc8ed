package digest

import (
	"strings"
	"testing"
	"time"

	"FeedDigest/internal/domain"
)

func TestClassifyArtifactByGUID(t *testing.T) {
	t.Parallel()

	for _, guid := range []string{
		"ai-digest:summary:3:1700000000",
		"ai-digest:translation:orig-guid:1700000000",
	} {
		verdict := Classify(domain.Entry{GUID: guid, Title: "whatever", Content: "<p>body</p>"})
		if verdict.Kind != domain.VerdictArtifact {
			t.Fatalf("guid %s: expected Artifact, got %v", guid, verdict.Kind)
		}
	}
}

func TestClassifyArtifactByLegacyTitle(t *testing.T) {
	t.Parallel()

	entry := domain.Entry{GUID: "normal-guid", Title: "[Summary] Tech Feed - 2026-01-01 06:00"}
	if verdict := Classify(entry); verdict.Kind != domain.VerdictArtifact {
		t.Fatalf("expected Artifact, got %v", verdict.Kind)
	}
}

func TestClassifyAlreadyProcessed(t *testing.T) {
	t.Parallel()

	entry := domain.Entry{
		GUID:    "normal-guid",
		Title:   "An article",
		Content: `<p class="ai-digest-skip-note">Not summarized: image-dominated entry with too little text</p><p>rest</p>`,
	}
	if verdict := Classify(entry); verdict.Kind != domain.VerdictAlreadyProcessed {
		t.Fatalf("expected AlreadyProcessed, got %v", verdict.Kind)
	}
}

// A legitimate article quoting the marker string is excluded too. That is
// accepted source behavior, pinned here so a change is deliberate.
func TestClassifyMarkerQuoteFalsePositive(t *testing.T) {
	t.Parallel()

	entry := domain.Entry{
		GUID:    "normal-guid",
		Title:   "How our reader annotates entries",
		Content: "<p>The reader wraps skipped items in a ai-digest-skip-note element.</p>",
	}
	if verdict := Classify(entry); verdict.Kind != domain.VerdictAlreadyProcessed {
		t.Fatalf("expected AlreadyProcessed, got %v", verdict.Kind)
	}
}

func TestClassifyImageDominatedShortText(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("x", 150)
	entry := domain.Entry{
		GUID:    "g1",
		Content: `<img src="a.jpg"/><img src="b.jpg"/><p>` + short + `</p>`,
	}

	verdict := Classify(entry)
	if verdict.Kind != domain.VerdictSkip {
		t.Fatalf("expected Skip, got %v", verdict.Kind)
	}
	if verdict.Reason == "" {
		t.Fatal("expected a skip reason")
	}
}

func TestClassifyImageWithEnoughText(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("y", 500)
	entry := domain.Entry{
		GUID:    "g2",
		Content: `<img src="a.jpg"/><p>` + long + `</p>`,
	}

	if verdict := Classify(entry); verdict.Kind != domain.VerdictEligible {
		t.Fatalf("expected Eligible, got %v", verdict.Kind)
	}
}

func TestClassifyShortTextWithoutImages(t *testing.T) {
	t.Parallel()

	// Length alone never disqualifies; only images plus short text do.
	entry := domain.Entry{GUID: "g3", Content: "<p>tiny</p>"}
	if verdict := Classify(entry); verdict.Kind != domain.VerdictEligible {
		t.Fatalf("expected Eligible, got %v", verdict.Kind)
	}
}

func TestAnnotateSkipIdempotent(t *testing.T) {
	t.Parallel()

	entry := domain.Entry{GUID: "g4", Content: "<p>body</p>"}

	if !AnnotateSkip(&entry, "image-dominated entry with too little text") {
		t.Fatal("first annotation should apply")
	}
	once := entry.Content

	if AnnotateSkip(&entry, "image-dominated entry with too little text") {
		t.Fatal("second annotation should be a no-op")
	}
	if entry.Content != once {
		t.Fatal("content changed on repeated annotation")
	}

	if count := strings.Count(entry.Content, skipMarkerClass); count != 1 {
		t.Fatalf("expected exactly one banner, found %d markers", count)
	}
}

func TestArtifactsNeverEligibleRoundTrip(t *testing.T) {
	t.Parallel()

	feed := domain.Feed{ID: 7, Title: "Tech Feed", SiteURL: "https://example.org"}
	now := time.Date(2026, time.January, 5, 6, 0, 0, 0, time.UTC)

	batch := []domain.Entry{{ID: 1, GUID: "orig", URL: "https://example.org/a", Content: "<p>text</p>"}}
	results := []domain.SummaryResult{{Title: "Titre", Summary: "Resume."}}

	summary := BuildSummaryEntry(feed, batch, results, now)
	if verdict := Classify(summary); verdict.Kind == domain.VerdictEligible {
		t.Fatal("summary artifact classified Eligible")
	}

	translated := "Corps traduit."
	translation := BuildTranslationEntry(feed, batch[0], domain.SummaryResult{
		Title: "Titre", Summary: "Resume.", TranslatedContent: &translated,
	}, now)
	if verdict := Classify(translation); verdict.Kind == domain.VerdictEligible {
		t.Fatal("translation artifact classified Eligible")
	}
}
