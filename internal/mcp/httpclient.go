package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/liftlog/liftlog/internal/models"
)

// HTTPClient implements DataSource by calling the LiftLog REST API with a
// bearer token. Used for remote MCP mode where the binary runs locally
// (stdio) but data lives on the server.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating every request with the token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ProfileSummary(ctx context.Context) (*ProfileSummary, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}
	var summary ProfileSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &summary, nil
}

func (c *HTTPClient) Session(ctx context.Context, date time.Time) (*SessionView, error) {
	params := url.Values{"date": {date.Format("2006-01-02")}}
	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}
	var view SessionView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("httpclient: decode session: %w", err)
	}
	return &view, nil
}

func (c *HTTPClient) Leaderboards(ctx context.Context, category string) ([]CategoryBoard, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	body, err := c.get(ctx, "/api/v1/leaderboards", params)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Leaderboards []CategoryBoard `json:"leaderboards"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode leaderboards: %w", err)
	}
	return resp.Leaderboards, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/exercises/categories", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode categories: %w", err)
	}
	return resp.Categories, nil
}

func (c *HTTPClient) Exercises(ctx context.Context, category string) ([]models.Exercise, error) {
	params := url.Values{"category": {category}}
	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Exercises []models.Exercise `json:"exercises"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return resp.Exercises, nil
}
