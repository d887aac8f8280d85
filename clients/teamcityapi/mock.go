package teamcityapi

import (
	"context"
)

type MockClient struct {
	GetBuildTypesForTemplateFunc func(ctx context.Context, templateID string) (buildTypes []BuildType, err error)
	GetLastBuildFunc             func(ctx context.Context, buildTypeID string) (build *Build, err error)
}

func (c MockClient) GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error) {
	if c.GetBuildTypesForTemplateFunc == nil {
		return
	}
	return c.GetBuildTypesForTemplateFunc(ctx, templateID)
}

func (c MockClient) GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error) {
	if c.GetLastBuildFunc == nil {
		return
	}
	return c.GetLastBuildFunc(ctx, buildTypeID)
}
