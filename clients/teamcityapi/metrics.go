package teamcityapi

import (
	"context"
	"time"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetBuildTypesForTemplate", begin)
	}(time.Now())

	return c.Client.GetBuildTypesForTemplate(ctx, templateID)
}

func (c *metricsClient) GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetLastBuild", begin)
	}(time.Now())

	return c.Client.GetLastBuild(ctx, buildTypeID)
}
