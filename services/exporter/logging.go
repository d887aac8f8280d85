package exporter

import (
	"context"

	"github.com/estafette/teamcity-build-status-exporter/api"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "exporter"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) PollCycle(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(s.prefix, "PollCycle", err) }()

	return s.Service.PollCycle(ctx)
}
