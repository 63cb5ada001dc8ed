package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"FeedDigest/internal/config"
	"FeedDigest/internal/ports"
)

const (
	completionTimeout = 180 * time.Second
	connectTimeout    = 30 * time.Second
	testTimeout       = 30 * time.Second

	maxErrorBody = 4 * 1024
)

// Client implements ports.ChatClient against OpenAI-compatible
// chat-completion APIs.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.ChatClient = (*Client)(nil)

// NewClient builds a client from per-run digest settings.
func NewClient(settings config.DigestSettings, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(settings.Endpoint, "/"),
		model:    settings.Model,
		apiKey:   settings.APIKey,
		httpClient: &http.Client{
			Timeout: completionTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
			},
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete posts a two-message payload and returns the raw model text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("chat client misconfigured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &MalformedResponseError{Reason: "invalid JSON: " + err.Error()}
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", &MalformedResponseError{Reason: "missing choices[0].message.content"}
	}

	if u := parsed.Usage; u != nil && c.logger != nil {
		c.logger.Info("token usage",
			"prompt_tokens", u.PromptTokens,
			"completion_tokens", u.CompletionTokens,
			"total_tokens", u.TotalTokens)
	}

	return *parsed.Choices[0].Message.Content, nil
}

// TestConnection issues a minimal completion bounded by a short timeout.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, testTimeout)
	defer cancel()

	_, err := c.Complete(ctx, "You are a connectivity probe.", "Reply with the single word OK.")
	return err
}
