package exporter

import (
	"context"
	"time"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) PollCycle(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "PollCycle", begin)
	}(time.Now())

	return s.Service.PollCycle(ctx)
}
