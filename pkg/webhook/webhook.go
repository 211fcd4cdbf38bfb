// Chat/ops webhook client posting MessageCard-style notifications.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fact is one name/value row of a card section.
type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Section struct {
	Facts    []Fact `json:"facts"`
	Markdown bool   `json:"markdown"`
}

// MessageCard is the connector card format the ops channel consumes.
type MessageCard struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	Summary    string    `json:"summary"`
	ThemeColor string    `json:"themeColor"`
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
}

// NewCard returns a card with the envelope fields filled in.
func NewCard(summary, title string, facts []Fact) MessageCard {
	return MessageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		Summary:    summary,
		ThemeColor: "0076D7",
		Title:      title,
		Sections:   []Section{{Facts: facts, Markdown: true}},
	}
}

// SendCard posts the card to the configured endpoint.
func (c *Client) SendCard(ctx context.Context, card MessageCard) error {
	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}
	return nil
}
