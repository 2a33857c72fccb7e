package freetogame

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
)

// Config controls how the client reaches the free-to-play games API.
type Config struct {
	BaseURL    string
	APIKey     string
	APIHost    string
	Platform   string
	HTTPClient *http.Client
}

// Client fetches the catalog from the free-to-play games API and maps it to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	platform   string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiHost:    resolveHost(cfg.APIKey, cfg.APIHost),
		platform:   strings.ToLower(strings.TrimSpace(cfg.Platform)),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchGames retrieves the full catalog in upstream order.
func (c *Client) FetchGames(ctx context.Context) ([]games.Game, error) {
	req, err := c.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Requests-Remaining"),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("freetogame: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeGames(raw)
}

func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, err
	}

	if c.platform != "" {
		q := req.URL.Query()
		q.Set("platform", c.platform)
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(headerRapidKey, c.apiKey)
		req.Header.Set(headerRapidHost, c.apiHost)
	}

	return req, nil
}

func decodeGames(raw []byte) ([]games.Game, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, payloadError(trimmed)
	}

	var payload []gameResponse
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("freetogame: decode games: %w", err)
	}
	return mapGames(payload), nil
}

func payloadError(body []byte) error {
	msg := "expected a list of games"
	var status statusResponse
	if len(body) > 0 && body[0] == '{' && json.Unmarshal(body, &status) == nil && status.StatusMessage != "" {
		msg = fmt.Sprintf("%s: %s", msg, status.StatusMessage)
	}
	return &catalog.ValidationError{Field: "payload", Message: msg}
}
