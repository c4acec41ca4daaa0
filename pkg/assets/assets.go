// Package assets fetches the static report assets (fonts, logo, signature
// stamp) hosted on the deployment's own public host. The bundle is loaded
// once at startup and shared read-only by all requests.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type Config struct {
	PublicHost string
	Timeout    time.Duration
}

// ConfigFromEnv reads asset host config from environment variables.
// PUBLIC_HOST is required; a missing value is a startup-time misconfiguration.
func ConfigFromEnv() (Config, error) {
	host := os.Getenv("PUBLIC_HOST")
	if host == "" {
		return Config{}, errors.New("PUBLIC_HOST is required")
	}
	return Config{PublicHost: normalizeHost(host), Timeout: 30 * time.Second}, nil
}

func normalizeHost(h string) string {
	if !strings.Contains(h, "://") {
		h = "https://" + h
	}
	return strings.TrimRight(h, "/")
}

// Font is one TTF face to register with the render engine.
type Font struct {
	Family string
	Style  string // "" regular, "B" bold
	Data   []byte
}

// Bundle holds every static asset a report needs. Immutable after Load.
type Bundle struct {
	Fonts []Font
	Logo  []byte
	Stamp []byte
}

var fontFiles = []struct {
	family string
	style  string
	path   string
}{
	{"Inter", "", "/fonts/inter-regular.ttf"},
	{"Inter", "B", "/fonts/inter-bold.ttf"},
	{"PlayfairDisplay", "", "/fonts/playfair-regular.ttf"},
	{"PlayfairDisplay", "B", "/fonts/playfair-bold.ttf"},
	{"NotoEmoji", "", "/fonts/noto-emoji.ttf"},
}

// Load fetches all fonts and images and verifies each response. Any failure
// is returned to the caller, which treats it as fatal.
func Load(ctx context.Context, cfg Config) (*Bundle, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	b := &Bundle{}

	for _, f := range fontFiles {
		data, err := fetch(ctx, client, cfg.PublicHost+f.path)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", f.path, err)
		}
		b.Fonts = append(b.Fonts, Font{Family: f.family, Style: f.style, Data: data})
	}

	logo, err := fetch(ctx, client, cfg.PublicHost+"/logo.png")
	if err != nil {
		return nil, fmt.Errorf("load logo: %w", err)
	}
	b.Logo = logo

	stamp, err := fetch(ctx, client, cfg.PublicHost+"/stamp.png")
	if err != nil {
		return nil, fmt.Errorf("load stamp: %w", err)
	}
	b.Stamp = stamp

	return b, nil
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
