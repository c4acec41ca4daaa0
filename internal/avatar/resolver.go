// Package avatar resolves a profile image for the report subject: the real
// uploaded avatar when one exists, otherwise a generated placeholder showing
// the user's initials.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/trustlab/trust-report-service/internal/report/entity"
)

// ErrNoAvatar reports that both the real avatar and the placeholder failed to
// resolve. The handler maps it to a dedicated response.
var ErrNoAvatar = errors.New("no avatar available")

type Config struct {
	// FileHost is the file-storage host serving uploaded avatars. It is the
	// same host as the analytics service.
	FileHost string
	// PlaceholderHost serves generated placeholder images.
	PlaceholderHost string
}

// ConfigFromEnv builds resolver config. The file host is taken from the
// analytics host; PLACEHOLDER_HOST overrides the placeholder service.
func ConfigFromEnv(fileHost string) Config {
	ph := os.Getenv("PLACEHOLDER_HOST")
	if ph == "" {
		ph = "https://dummyimage.com"
	}
	if !strings.Contains(ph, "://") {
		ph = "https://" + ph
	}
	return Config{FileHost: fileHost, PlaceholderHost: strings.TrimRight(ph, "/")}
}

// Resolver fetches avatar candidates concurrently and applies a fixed
// preference order over the results.
type Resolver struct {
	cfg    Config
	http   *http.Client
	logger *zap.SugaredLogger
}

func NewResolver(cfg Config, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{cfg: cfg, http: &http.Client{}, logger: logger}
}

// Resolve launches both fetches, waits for both to finish, and prefers the
// real avatar over the placeholder regardless of completion order. When
// neither resolves it returns ErrNoAvatar.
func (r *Resolver) Resolve(ctx context.Context, user entity.User) ([]byte, error) {
	real := make(chan []byte, 1)
	placeholder := make(chan []byte, 1)

	go func() { real <- r.fetchAvatar(ctx, user.ID) }()
	go func() { placeholder <- r.fetchPlaceholder(ctx, user) }()

	realBytes, placeholderBytes := <-real, <-placeholder
	if realBytes != nil {
		return realBytes, nil
	}
	if placeholderBytes != nil {
		return placeholderBytes, nil
	}
	return nil, ErrNoAvatar
}

// fetchAvatar returns the uploaded full-size avatar or nil. A missing avatar
// is an expected, common case, so every failure collapses to nil.
func (r *Resolver) fetchAvatar(ctx context.Context, userID string) []byte {
	u := fmt.Sprintf("%s/@/fs/avatar/%s/fullsize.jpg", r.cfg.FileHost, url.PathEscape(userID))
	return r.get(ctx, u)
}

// fetchPlaceholder requests a generated image carrying the user's initials.
func (r *Resolver) fetchPlaceholder(ctx context.Context, user entity.User) []byte {
	initials := Initials(user.FirstName, user.LastName)
	u := fmt.Sprintf("%s/100x100/dddddd/909090?text=%s", r.cfg.PlaceholderHost, url.QueryEscape(initials))
	return r.get(ctx, u)
}

func (r *Resolver) get(ctx context.Context, u string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	resp, err := r.http.Do(req)
	if err != nil {
		r.logger.Debugw("avatar fetch failed", "url", u, "err", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.logger.Debugw("avatar fetch non-ok", "url", u, "status", resp.StatusCode)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return nil
	}
	return body
}

// Initials derives the placeholder text from the user's names: decorative
// runes (emoji and other symbols) are stripped, each non-empty part
// contributes its first rune, parts are joined with a space and upper-cased.
func Initials(firstName, lastName string) string {
	var parts []string
	for _, name := range []string{firstName, lastName} {
		cleaned := strings.TrimSpace(stripDecorative(name))
		if cleaned == "" {
			continue
		}
		parts = append(parts, string([]rune(cleaned)[0]))
	}
	return strings.ToUpper(strings.Join(parts, " "))
}

func stripDecorative(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
