// Package suggest provides a client for a chat-completions style text
// service used to suggest songs similar to the current track.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no endpoint is configured.
var ErrNotConfigured = errors.New("suggestion service not configured")

const (
	defaultModel = "gpt-4o-mini"
	wantCount    = 5
)

// Client is a suggestion service client.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates a client for an OpenAI-compatible chat-completions
// endpoint. The endpoint is the full URL of the completions resource.
func New(endpoint, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether the client has an endpoint to call.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Query describes the currently playing track.
type Query struct {
	Genre           string
	Tempo           string
	Characteristics string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
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

// Suggest asks the service for song titles similar to the described
// track. There is no retry; a failed or cancelled call returns an error
// and no partial result.
func (c *Client) Suggest(ctx context.Context, q Query) ([]string, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a music expert. You suggest songs based on the current track's genre, tempo, and musical characteristics. Reply with one song per line, nothing else."},
			{Role: "user", Content: prompt(q)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, errors.New("empty response")
	}

	songs := parseSongs(result.Choices[0].Message.Content)
	if len(songs) == 0 {
		return nil, errors.New("no suggestions in response")
	}
	return songs, nil
}

func prompt(q Query) string {
	return fmt.Sprintf(
		"Current Track Genre: %s\nCurrent Track Tempo: %s\nCurrent Track Characteristics: %s\n\nSuggest %d songs with similar characteristics:",
		q.Genre, q.Tempo, q.Characteristics, wantCount,
	)
}

// parseSongs extracts one song per line, stripping list markers the
// model tends to add ("1. ", "- ", "* ").
func parseSongs(content string) []string {
	var songs []string
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		line = strings.Trim(line, `"`)
		if line == "" {
			continue
		}
		songs = append(songs, line)
		if len(songs) == wantCount {
			break
		}
	}
	return songs
}
