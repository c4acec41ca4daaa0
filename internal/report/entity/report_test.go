package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLabelDefault(t *testing.T) {
	assert.Equal(t, "Mini app", GenerateRequest{}.ContextLabel())
	assert.Equal(t, "TestChat", GenerateRequest{ChatUsername: "TestChat"}.ContextLabel())
}

func TestGenerateRequestDecoding(t *testing.T) {
	body := `{"messageId":"m1","user":{"id":"42","first_name":"Ivan","last_name":"Petrov","username":"ivanp"},"chatUsername":"TestChat"}`

	var req GenerateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "m1", req.MessageID)
	assert.Equal(t, "42", req.User.ID)
	assert.Equal(t, "Ivan", req.User.FirstName)
	assert.Equal(t, "Petrov", req.User.LastName)
	assert.Equal(t, "ivanp", req.User.Username)
	assert.Equal(t, "TestChat", req.ChatUsername)
}

func TestTrustAnalyticsPreservesScoreRepresentation(t *testing.T) {
	body := `{"trust_score":80,"mod_trust_score":-2.5,"verdict":"BadStage","factors":[{"sampler":"text","score":0,"max_score":20}]}`

	var rec TrustAnalytics
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	assert.Equal(t, "80", rec.TrustScore.String())
	assert.Equal(t, "-2.5", rec.ModTrustScore.String())
	require.Len(t, rec.Factors, 1)
	assert.Equal(t, "20", rec.Factors[0].MaxScore.String())
}
