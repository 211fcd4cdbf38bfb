// Client for the external AI assistant endpoints: resource recommendation,
// event prioritization and date suggestion. Responses are opaque JSON; the
// caller decides how much structure to impose.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PastEvent is one few-shot history entry in a recommendation request.
type PastEvent struct {
	EventType string                 `json:"event_type"`
	Venue     string                 `json:"venue"`
	Resources map[string]interface{} `json:"resources"`
}

// RecommendationRequest is the context payload sent to the recommender.
type RecommendationRequest struct {
	EventType          string      `json:"event_type"`
	Venue              string      `json:"venue"`
	DurationDays       int         `json:"duration_days"`
	ExpectedAttendance int         `json:"expected_attendance"`
	PastEvents         []PastEvent `json:"past_events"`
}

// RecommendResources asks the recommender for a resource mapping. The
// response body is returned verbatim as a map, no schema validation.
func (c *Client) RecommendResources(ctx context.Context, req *RecommendationRequest) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.post(ctx, "/api/resource-recommend", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PrioritizeEvents sends event-like objects to the prioritizer and returns
// them annotated with priority and score. Callers fall back to the
// unannotated list on any error.
func (c *Client) PrioritizeEvents(ctx context.Context, payload interface{}, out interface{}) error {
	return c.post(ctx, "/api/prioritize-events", map[string]interface{}{"events": payload}, out)
}

// SuggestDate forwards a free-text description to the date-suggestion
// endpoint and returns its response verbatim.
func (c *Client) SuggestDate(ctx context.Context, description string) (map[string]interface{}, error) {
	var out map[string]interface{}
	payload := map[string]string{"description": description}
	if err := c.post(ctx, "/api/suggest-date", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ai service returned status %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ai service response: %w", err)
	}
	return nil
}
