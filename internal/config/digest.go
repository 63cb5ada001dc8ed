package config

// Settings store keys owned by the digest pipeline.
const (
	KeyAPIEndpoint      = "api_endpoint"
	KeySecretKey        = "secret_key"
	KeyModel            = "model"
	KeyDestLanguage     = "dest_language"
	KeyMaxContentLength = "max_content_length"
)

const (
	// DefaultEndpoint is an OpenAI-compatible API base URL.
	DefaultEndpoint         = "https://api.openai.com/v1"
	DefaultModel            = "gpt-5-nano"
	DefaultLanguage         = "English"
	DefaultMaxContentLength = 4000

	minContentLength = 500
	maxContentLength = 16000
)

// DigestSettings is the per-run processing configuration, loaded once from
// the settings store and immutable for the duration of a maintenance run.
type DigestSettings struct {
	Endpoint         string
	APIKey           string
	Model            string
	Language         string
	MaxContentLength int
}

// NewDigestSettings fills defaults for blank values and clamps the content
// length to its supported range.
func NewDigestSettings(endpoint, apiKey, model, language string, maxLen int) DigestSettings {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if language == "" {
		language = DefaultLanguage
	}
	if maxLen == 0 {
		maxLen = DefaultMaxContentLength
	}
	if maxLen < minContentLength {
		maxLen = minContentLength
	}
	if maxLen > maxContentLength {
		maxLen = maxContentLength
	}

	return DigestSettings{
		Endpoint:         endpoint,
		APIKey:           apiKey,
		Model:            model,
		Language:         language,
		MaxContentLength: maxLen,
	}
}
