package teamcityapi

import (
	"context"

	"github.com/estafette/teamcity-build-status-exporter/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "teamcityapi"}
}

type loggingClient struct {
	Client
	prefix string
}

func (c *loggingClient) GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error) {
	defer func() { api.HandleLogError(c.prefix, "GetBuildTypesForTemplate", err) }()

	return c.Client.GetBuildTypesForTemplate(ctx, templateID)
}

func (c *loggingClient) GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "GetLastBuild", err) }()

	return c.Client.GetLastBuild(ctx, buildTypeID)
}
