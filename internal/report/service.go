package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/trustlab/trust-report-service/internal/analytics"
	"github.com/trustlab/trust-report-service/internal/avatar"
	"github.com/trustlab/trust-report-service/internal/document"
	"github.com/trustlab/trust-report-service/internal/render"
	"github.com/trustlab/trust-report-service/internal/report/entity"
)

// Service runs the report pipeline: fetch analytics, resolve an avatar,
// compose the document, render it. Every stage failure aborts the request;
// there is no partial output.
type Service struct {
	analytics *analytics.Client
	avatars   *avatar.Resolver
	composer  *document.Composer
	engine    *render.Engine
	logger    *zap.SugaredLogger
}

func NewService(ac *analytics.Client, av *avatar.Resolver, comp *document.Composer, eng *render.Engine, logger *zap.SugaredLogger) *Service {
	return &Service{analytics: ac, avatars: av, composer: comp, engine: eng, logger: logger}
}

// Generate produces the PDF for one request. The analytics fetch runs first
// so an upstream rejection aborts before any avatar traffic; the two avatar
// fetches then run concurrently inside the resolver.
func (s *Service) Generate(ctx context.Context, req entity.GenerateRequest) ([]byte, error) {
	record, err := s.analytics.Fetch(ctx, req.User.ID, req.MessageID)
	if err != nil {
		return nil, err
	}

	avatarBytes, err := s.avatars.Resolve(ctx, req.User)
	if err != nil {
		return nil, err
	}

	doc, err := s.composer.Compose(record, req.User, avatarBytes, req.ContextLabel())
	if err != nil {
		return nil, err
	}

	pdf, err := s.engine.Render(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("report rendered",
		"user", req.User.ID,
		"verdict", record.Verdict,
		"bytes", len(pdf),
	)
	return pdf, nil
}
