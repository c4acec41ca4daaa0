// Package analytics talks to the upstream trust-analytics service.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/trustlab/trust-report-service/internal/report/entity"
)

type Config struct {
	Host  string
	Token string
}

// ConfigFromEnv reads upstream config from environment variables.
// Both values are required; absence is a startup-time misconfiguration.
func ConfigFromEnv() (Config, error) {
	host := os.Getenv("ANALYTICS_HOST")
	if host == "" {
		return Config{}, errors.New("ANALYTICS_HOST is required")
	}
	token := os.Getenv("ANALYTICS_TOKEN")
	if token == "" {
		return Config{}, errors.New("ANALYTICS_TOKEN is required")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return Config{Host: strings.TrimRight(host, "/"), Token: token}, nil
}

// UpstreamError carries an upstream non-success response byte-for-byte so the
// handler can surface the original payload to the caller. The body is never
// reinterpreted locally.
type UpstreamError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analytics upstream returned %d: %s", e.StatusCode, e.Body)
}

// Client fetches trust-analytics records.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{}}
}

// Fetch retrieves the analytics record for one (user, message) pair. An empty
// messageID is passed through; the upstream decides whether it is valid.
// Non-success responses become *UpstreamError; successful bodies are decoded
// without field validation.
func (c *Client) Fetch(ctx context.Context, userID, messageID string) (*entity.TrustAnalytics, error) {
	u := fmt.Sprintf("%s/@/trust/%s?messageId=%s", c.cfg.Host, url.PathEscape(userID), url.QueryEscape(messageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	var record entity.TrustAnalytics
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode analytics response: %w", err)
	}
	return &record, nil
}
