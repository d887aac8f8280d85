package teamcityapi

import (
	"context"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "teamcityapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetBuildTypesForTemplate"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetBuildTypesForTemplate(ctx, templateID)
}

func (c *tracingClient) GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetLastBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetLastBuild(ctx, buildTypeID)
}
