package digest

import (
	"fmt"
	"html"
	"strings"

	"FeedDigest/internal/domain"
)

// minWorthwhileText is the plain-text length below which an image-carrying
// entry is not worth sending to the model.
const minWorthwhileText = 200

// Classify decides what the pipeline does with a single entry: skip it as
// a prior artifact, skip it as already processed, annotate it as not worth
// condensing, or admit it for batching.
func Classify(entry domain.Entry) domain.Verdict {
	if strings.HasPrefix(entry.GUID, summaryGUIDPrefix) ||
		strings.HasPrefix(entry.GUID, translationGUIDPrefix) ||
		strings.HasPrefix(entry.Title, legacyTitlePrefix) {
		return domain.Verdict{Kind: domain.VerdictArtifact}
	}

	// Marker substrings survive even when a crash prevented the read-state
	// commit, so annotated entries are never re-sent to the model.
	if strings.Contains(entry.Content, skipMarkerClass) ||
		strings.Contains(entry.Content, summaryMarkerClass) ||
		strings.Contains(entry.Content, translationMarkerClass) {
		return domain.Verdict{Kind: domain.VerdictAlreadyProcessed}
	}

	if HasImages(entry.Content) && len([]rune(PlainText(entry.Content))) < minWorthwhileText {
		return domain.Verdict{Kind: domain.VerdictSkip, Reason: "image-dominated entry with too little text"}
	}

	return domain.Verdict{Kind: domain.VerdictEligible}
}

// AnnotateSkip prefixes the entry body with a visible banner naming the
// skip reason. Returns false when the banner is already present.
func AnnotateSkip(entry *domain.Entry, reason string) bool {
	if strings.Contains(entry.Content, skipMarkerClass) {
		return false
	}

	banner := fmt.Sprintf("<p class=%q>Not summarized: %s</p>", skipMarkerClass, html.EscapeString(reason))
	entry.Content = banner + "\n" + entry.Content
	return true
}
