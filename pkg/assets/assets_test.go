package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data:" + r.URL.Path))
	}))
	t.Cleanup(srv.Close)

	bundle, err := Load(context.Background(), Config{PublicHost: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	require.Len(t, bundle.Fonts, 5)
	assert.Equal(t, "Inter", bundle.Fonts[0].Family)
	assert.Equal(t, "B", bundle.Fonts[1].Style)
	assert.Equal(t, []byte("data:/fonts/inter-regular.ttf"), bundle.Fonts[0].Data)
	assert.Equal(t, []byte("data:/logo.png"), bundle.Logo)
	assert.Equal(t, []byte("data:/stamp.png"), bundle.Stamp)
}

func TestLoadFailsOnMissingAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stamp.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	_, err := Load(context.Background(), Config{PublicHost: srv.URL, Timeout: 5 * time.Second})
	assert.ErrorContains(t, err, "load stamp")
}

func TestConfigFromEnvRequiresPublicHost(t *testing.T) {
	t.Setenv("PUBLIC_HOST", "")
	_, err := ConfigFromEnv()
	assert.ErrorContains(t, err, "PUBLIC_HOST")

	t.Setenv("PUBLIC_HOST", "reports.example.com")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://reports.example.com", cfg.PublicHost)
}
