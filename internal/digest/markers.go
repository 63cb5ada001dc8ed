package digest

// Reserved namespaces and marker strings identifying content this system
// produced. The GUID prefixes guard synthesized entries, the CSS classes
// guard annotated bodies; both must stay stable across versions or old
// artifacts become eligible again.
const (
	summaryGUIDPrefix     = "ai-digest:summary:"
	translationGUIDPrefix = "ai-digest:translation:"

	// legacyTitlePrefix matches artifacts created before GUID namespacing.
	legacyTitlePrefix = "[Summary]"

	summaryMarkerClass     = "ai-digest-summary"
	translationMarkerClass = "ai-digest-translation"
	skipMarkerClass        = "ai-digest-skip-note"
)
