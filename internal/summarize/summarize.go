// Package summarize produces short summaries of todo descriptions. A
// remote model is used when an API key is configured; every failure
// degrades to the local truncating summarizer, so callers always get a
// best-effort string and never an error.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eleven-am/tasknest/internal/logger"
)

// MaxChars is the local summarizer's truncation point.
const MaxChars = 200

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-3.5-turbo"
	maxTokens       = 120
	requestTimeout  = 10 * time.Second
)

// Summarizer calls the remote model when configured and falls back to
// Local otherwise.
type Summarizer struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      logger.Logger
}

// New builds a summarizer. An empty apiKey disables the remote call
// entirely.
func New(apiKey string) *Summarizer {
	return &Summarizer{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
		log:      logger.Summarize(),
	}
}

// Summarize returns a short summary of text. It never fails: any
// remote error, including a missing key, yields the local fallback.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	if s.apiKey != "" {
		if summary, err := s.remote(ctx, text); err == nil {
			return summary
		} else {
			s.log.Warn("remote summarization failed, using local fallback", "error", err)
		}
	}
	return Local(text)
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *Summarizer) remote(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: defaultModel,
		Messages: []chatMessage{
			{Role: "user", Content: "Summarize:\n" + text},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Local collapses whitespace and truncates to MaxChars characters,
// appending "..." when anything was cut. Empty input yields "".
func Local(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= MaxChars {
		return collapsed
	}
	return string(runes[:MaxChars]) + "..."
}
