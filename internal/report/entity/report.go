package entity

import "encoding/json"

// User identifies the subject of a trust report. It arrives in the request
// body and is passed through the pipeline unmodified.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Issuer is the certifying identity attached to an analytics record.
type Issuer struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`
}

// Factor is one scored dimension of the trust analysis. Sequence order in
// TrustAnalytics.Factors is display order.
type Factor struct {
	Sampler  string      `json:"sampler"`
	Score    json.Number `json:"score"`
	MaxScore json.Number `json:"max_score"`
}

// TrustAnalytics is the upstream verdict payload for one (user, message)
// pair. Scores stay json.Number so the report shows exactly what the
// upstream sent. No local validation; the upstream is trusted.
type TrustAnalytics struct {
	TrustScore         json.Number `json:"trust_score"`
	ModTrustScore      json.Number `json:"mod_trust_score"`
	Verdict            string      `json:"verdict"`
	ReportCreationDate int64       `json:"report_creation_date"`
	Issuer             Issuer      `json:"issuer"`
	Factors            []Factor    `json:"factors"`
}

// GenerateRequest is the inbound body of the report endpoint.
type GenerateRequest struct {
	MessageID    string `json:"messageId"`
	User         User   `json:"user"`
	ChatUsername string `json:"chatUsername"`
}

// DefaultContextLabel is used when the request carries no chat username.
const DefaultContextLabel = "Mini app"

// ContextLabel is the e-signature context embedded in the report.
func (r GenerateRequest) ContextLabel() string {
	if r.ChatUsername == "" {
		return DefaultContextLabel
	}
	return r.ChatUsername
}
