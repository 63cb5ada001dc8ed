package config

import "testing"

func TestNewDigestSettingsDefaults(t *testing.T) {
	t.Parallel()

	settings := NewDigestSettings("", "sk-1", "", "", 0)

	if settings.Endpoint != DefaultEndpoint {
		t.Fatalf("unexpected endpoint: %q", settings.Endpoint)
	}
	if settings.Model != DefaultModel || settings.Language != DefaultLanguage {
		t.Fatalf("defaults not applied: %+v", settings)
	}
	if settings.MaxContentLength != DefaultMaxContentLength {
		t.Fatalf("unexpected max length: %d", settings.MaxContentLength)
	}
}

func TestNewDigestSettingsClampsLength(t *testing.T) {
	t.Parallel()

	if got := NewDigestSettings("", "", "", "", 100).MaxContentLength; got != 500 {
		t.Fatalf("expected lower clamp 500, got %d", got)
	}
	if got := NewDigestSettings("", "", "", "", 99999).MaxContentLength; got != 16000 {
		t.Fatalf("expected upper clamp 16000, got %d", got)
	}
	if got := NewDigestSettings("", "", "", "", 8000).MaxContentLength; got != 8000 {
		t.Fatalf("in-range value mangled: %d", got)
	}
}
