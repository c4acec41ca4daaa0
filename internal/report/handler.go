package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/trustlab/trust-report-service/internal/analytics"
	"github.com/trustlab/trust-report-service/internal/avatar"
	"github.com/trustlab/trust-report-service/internal/report/entity"
)

// Handler exposes the report endpoint.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Generate handles POST requests. The body is decoded without schema
// validation; missing fields surface as downstream failures, matching the
// error mapping below.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req entity.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid report payload", "err", err)
		h.writeError(w, err)
		return
	}
	pdf, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// writeError maps pipeline failures to responses. Avatar exhaustion gets a
// dedicated 500; an upstream analytics rejection is surfaced byte-for-byte;
// everything else collapses to a 400 carrying the raw error text.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var upstream *analytics.UpstreamError

	switch {
	case errors.Is(err, avatar.ErrNoAvatar):
		h.logger.Warnw("avatar resolution exhausted")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to fetch profile picture"))
	case errors.As(err, &upstream):
		h.logger.Warnw("analytics upstream rejected request", "status", upstream.StatusCode)
		ct := upstream.ContentType
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(upstream.Body)
	default:
		h.logger.Warnw("report generation failed", "err", err)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(err.Error()))
	}
}
