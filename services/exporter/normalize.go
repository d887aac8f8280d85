package exporter

import (
	"github.com/estafette/teamcity-build-status-exporter/clients/teamcityapi"
)

// NormalizeBuildStatus maps the most recent finished build of a configuration to the published tri-state value:
// no build ever ran -> -1, successful -> 1, any other finished status (failure, error, unknown) -> 0
func NormalizeBuildStatus(build *teamcityapi.Build) float64 {
	if build == nil {
		return StatusNoBuilds
	}
	if build.Status == teamcityapi.BuildStatusSuccess {
		return StatusSuccess
	}
	return StatusFailure
}
