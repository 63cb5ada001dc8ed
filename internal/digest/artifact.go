package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"strings"
	"time"

	"FeedDigest/internal/domain"
)

const artifactAuthor = "AI Summary"

// BuildSummaryEntry renders one combined artifact for a processed batch:
// per original entry a heading linking back to it with the translated
// title, followed by the summary paragraph.
func BuildSummaryEntry(feed domain.Feed, batch []domain.Entry, results []domain.SummaryResult, now time.Time) domain.Entry {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=%q>", summaryMarkerClass)
	for i, res := range results {
		link := feed.SiteURL
		if i < len(batch) {
			link = batch[i].URL
		}
		fmt.Fprintf(&b, "\n<h3><a href=%q>%s</a></h3>\n<p>%s</p>",
			link, html.EscapeString(res.Title), html.EscapeString(res.Summary))
	}
	b.WriteString("\n</div>")
	content := b.String()

	link := feed.SiteURL
	if len(batch) > 0 {
		link = batch[0].URL
	}

	return domain.Entry{
		GUID:        fmt.Sprintf("%s%d:%d", summaryGUIDPrefix, feed.ID, now.Unix()),
		Hash:        contentHash(content),
		Title:       fmt.Sprintf("%s %s - %s", legacyTitlePrefix, feed.Title, now.Format("2006-01-02 15:04")),
		Content:     content,
		URL:         link,
		Author:      artifactAuthor,
		PublishedAt: now,
		SeenAt:      now,
		Read:        false,
		FeedID:      feed.ID,
	}
}

// BuildTranslationEntry renders the translate-mode artifact for one
// original entry: a summary banner followed by either the model-translated
// body or, when the source was already in the destination language, the
// original body unchanged. Publish time, author, link and tags carry over
// from the original.
func BuildTranslationEntry(feed domain.Feed, original domain.Entry, res domain.SummaryResult, now time.Time) domain.Entry {
	body := original.Content
	if res.TranslatedContent != nil {
		body = newlinesToBreaks(html.EscapeString(*res.TranslatedContent))
	}

	banner := fmt.Sprintf("<div class=%q><p>%s</p></div>",
		translationMarkerClass, html.EscapeString(res.Summary))
	content := banner + "\n" + body

	return domain.Entry{
		GUID:        fmt.Sprintf("%s%s:%d", translationGUIDPrefix, original.GUID, now.Unix()),
		Hash:        contentHash(content),
		Title:       res.Title,
		Content:     content,
		URL:         original.URL,
		Author:      original.Author,
		PublishedAt: original.PublishedAt,
		SeenAt:      now,
		Read:        false,
		FeedID:      feed.ID,
		Tags:        original.Tags,
	}
}

func newlinesToBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "<br/>")
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
