// Package rates fetches currency exchange rates from an external provider.
// The rest of the system treats a failed lookup as "rate unknown" and asks
// the caller for an explicit rate; nothing here is retried or cached.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Provider returns, for a base currency, the multiplier into every other
// currency code.
type Provider interface {
	Latest(ctx context.Context, base string) (map[string]float64, error)
}

// DefaultBaseURL is the public open.er-api.com endpoint.
const DefaultBaseURL = "https://open.er-api.com"

// Client is an HTTP Provider speaking the open.er-api.com response format.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rates client. An empty baseURL selects the public
// endpoint; a nil httpClient gets a 10 second timeout default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type latestResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Latest fetches the current rates for the given base currency.
func (c *Client) Latest(ctx context.Context, base string) (map[string]float64, error) {
	if base == "" {
		return nil, fmt.Errorf("base currency is required")
	}

	endpoint := c.baseURL + "/v6/latest/" + url.PathEscape(base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates provider returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("rates provider returned result %q", body.Result)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rates provider returned no rates for %s", base)
	}

	return body.Rates, nil
}
