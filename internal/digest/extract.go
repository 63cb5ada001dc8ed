package digest

import (
	"encoding/json"
	"fmt"

	"FeedDigest/internal/domain"
)

// SchemaError signals that the model response did not match the expected
// shape or element count.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "model response schema: " + e.Reason
}

type resultPayload struct {
	Title             *string `json:"title"`
	Summary           *string `json:"summary"`
	TranslatedContent *string `json:"translated_content"`
}

// ParseSummaries recovers a JSON array of {title, summary} objects from
// free-form model text and validates it against the batch size.
func ParseSummaries(raw string, expected int) ([]domain.SummaryResult, error) {
	span, ok := extractSpan(raw, '[', ']')
	if !ok {
		return nil, &SchemaError{Reason: "no JSON array found in response"}
	}

	var items []resultPayload
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, &SchemaError{Reason: "not an array of objects: " + err.Error()}
	}

	if len(items) != expected {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected %d summaries, got %d", expected, len(items))}
	}

	results := make([]domain.SummaryResult, 0, len(items))
	for i, item := range items {
		if item.Title == nil || item.Summary == nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("element %d is missing title or summary", i+1)}
		}
		results = append(results, domain.SummaryResult{
			Title:   *item.Title,
			Summary: *item.Summary,
		})
	}

	return results, nil
}

// ParseTranslation recovers a single JSON object from free-form model
// text. translated_content stays nil when the model signaled the source
// was already in the destination language.
func ParseTranslation(raw string) (domain.SummaryResult, error) {
	span, ok := extractSpan(raw, '{', '}')
	if !ok {
		return domain.SummaryResult{}, &SchemaError{Reason: "no JSON object found in response"}
	}

	var item resultPayload
	if err := json.Unmarshal([]byte(span), &item); err != nil {
		return domain.SummaryResult{}, &SchemaError{Reason: "not a JSON object: " + err.Error()}
	}

	if item.Title == nil || item.Summary == nil {
		return domain.SummaryResult{}, &SchemaError{Reason: "object is missing title or summary"}
	}

	return domain.SummaryResult{
		Title:             *item.Title,
		Summary:           *item.Summary,
		TranslatedContent: item.TranslatedContent,
	}, nil
}

// extractSpan scans for the first balanced top-level span delimited by the
// given bracket pair, using a depth counter so nested closers inside the
// span do not cut it short. Bracket characters inside JSON string literals
// are ignored.
func extractSpan(s string, open, close rune) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
