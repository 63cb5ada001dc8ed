package digest

import (
	"strings"
	"testing"
)

func TestPlainTextStripsAndCollapses(t *testing.T) {
	t.Parallel()

	html := "<p>Caf&eacute;   au\n lait</p><script>alert(1)</script><p>second</p>"
	got := PlainText(html)

	if got != "Café au lait second" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}

func TestParagraphTextKeepsBreaks(t *testing.T) {
	t.Parallel()

	html := "<p>First paragraph.</p><p>Second<br/>line two.</p>"
	got := ParagraphText(html)

	if !strings.Contains(got, "First paragraph.\n\nSecond\nline two.") {
		t.Fatalf("paragraph structure lost: %q", got)
	}
	if strings.Contains(got, "<") {
		t.Fatalf("markup survived: %q", got)
	}
}

func TestHasImages(t *testing.T) {
	t.Parallel()

	if !HasImages(`<p>intro</p><img src="x.png">`) {
		t.Fatal("expected image detection")
	}
	if HasImages("<p>just text</p>") {
		t.Fatal("false image detection")
	}
}

func TestTruncateAppendsMarker(t *testing.T) {
	t.Parallel()

	got := Truncate(strings.Repeat("a", 100), 40)
	if !strings.HasSuffix(got, truncationMarker) {
		t.Fatalf("missing truncation marker: %q", got)
	}
	if len([]rune(got)) != 40+len([]rune(truncationMarker)) {
		t.Fatalf("unexpected truncated length: %d", len([]rune(got)))
	}
}

func TestTruncateNoopBelowLimit(t *testing.T) {
	t.Parallel()

	text := "short text"
	if got := Truncate(text, 100); got != text {
		t.Fatalf("text mutated: %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 50)
	got := Truncate(text, 10)
	if !strings.HasPrefix(got, strings.Repeat("é", 10)) {
		t.Fatalf("rune boundary broken: %q", got)
	}
}
