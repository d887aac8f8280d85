package exporter

import (
	"context"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "exporter"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) PollCycle(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "PollCycle"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.PollCycle(ctx)
}
