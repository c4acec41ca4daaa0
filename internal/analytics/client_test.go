package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
	"trust_score": 80,
	"mod_trust_score": 5,
	"verdict": "GoodStage",
	"report_creation_date": 1700000000,
	"issuer": {"id": "CERT-77", "report_id": "rep-0001"},
	"factors": [
		{"sampler": "text", "score": 10, "max_score": 20},
		{"sampler": "media", "score": 3, "max_score": 15}
	]
}`

func TestFetchSuccess(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("messageId")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{Host: srv.URL, Token: "secret-token"})
	record, err := client.Fetch(context.Background(), "42", "msg-7")
	require.NoError(t, err)

	assert.Equal(t, "/@/trust/42", gotPath)
	assert.Equal(t, "msg-7", gotQuery)
	assert.Equal(t, "secret-token", gotAuth)

	assert.Equal(t, "GoodStage", record.Verdict)
	assert.Equal(t, "80", record.TrustScore.String())
	assert.Equal(t, "5", record.ModTrustScore.String())
	assert.Equal(t, int64(1700000000), record.ReportCreationDate)
	assert.Equal(t, "CERT-77", record.Issuer.ID)
	assert.Equal(t, "rep-0001", record.Issuer.ReportID)
	// factor order is display order and must survive decoding
	require.Len(t, record.Factors, 2)
	assert.Equal(t, "text", record.Factors[0].Sampler)
	assert.Equal(t, "media", record.Factors[1].Sampler)
}

func TestFetchEmptyMessageIDPermitted(t *testing.T) {
	var gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"verdict":"GoodStage"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{Host: srv.URL, Token: "t"})
	_, err := client.Fetch(context.Background(), "42", "")
	require.NoError(t, err)
	assert.Equal(t, "messageId=", gotRawQuery)
}

func TestFetchSurfacesUpstreamErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{Host: srv.URL, Token: "t"})
	_, err := client.Fetch(context.Background(), "42", "m")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Equal(t, "application/json", upstream.ContentType)
	assert.Equal(t, `{"error":"not_found"}`, string(upstream.Body))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ANALYTICS_HOST", "")
	t.Setenv("ANALYTICS_TOKEN", "")
	_, err := ConfigFromEnv()
	assert.ErrorContains(t, err, "ANALYTICS_HOST")

	t.Setenv("ANALYTICS_HOST", "trust.example.com")
	_, err = ConfigFromEnv()
	assert.ErrorContains(t, err, "ANALYTICS_TOKEN")

	t.Setenv("ANALYTICS_TOKEN", "tok")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://trust.example.com", cfg.Host)
	assert.Equal(t, "tok", cfg.Token)
}
