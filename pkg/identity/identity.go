// Token-introspection client for the external identity provider. The
// provider issues bearer tokens; this client exchanges one for the holder's
// id and email. Any failure is treated as unauthenticated by callers.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	introspectURL string
	apiKey        string
	httpClient    *http.Client
}

func NewClient(introspectURL, apiKey string) *Client {
	return &Client{
		introspectURL: introspectURL,
		apiKey:        apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Identity is the verified holder of a token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Introspect verifies the bearer token and returns the identity it belongs
// to. A non-2xx response or a response without an id means the token is
// invalid.
func (c *Client) Introspect(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.introspectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build introspection request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("introspection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %s", resp.Status)
	}

	var ident Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return nil, fmt.Errorf("failed to decode introspection response: %w", err)
	}
	if ident.ID == "" {
		return nil, fmt.Errorf("identity provider returned no user")
	}
	return &ident, nil
}
