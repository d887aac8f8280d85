package exporter

import (
	"testing"

	"github.com/estafette/teamcity-build-status-exporter/clients/teamcityapi"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeBuildStatus(t *testing.T) {
	t.Run("ReturnsNoBuildsWhenNoBuildEverRan", func(t *testing.T) {

		// act
		status := NormalizeBuildStatus(nil)

		assert.Equal(t, StatusNoBuilds, status)
	})

	t.Run("ReturnsSuccessForSuccessfulBuild", func(t *testing.T) {

		build := &teamcityapi.Build{Status: teamcityapi.BuildStatusSuccess}

		// act
		status := NormalizeBuildStatus(build)

		assert.Equal(t, StatusSuccess, status)
	})

	t.Run("ReturnsFailureForFailedBuild", func(t *testing.T) {

		build := &teamcityapi.Build{Status: teamcityapi.BuildStatusFailure}

		// act
		status := NormalizeBuildStatus(build)

		assert.Equal(t, StatusFailure, status)
	})

	t.Run("ReturnsFailureForErroredBuild", func(t *testing.T) {

		build := &teamcityapi.Build{Status: teamcityapi.BuildStatusError}

		// act
		status := NormalizeBuildStatus(build)

		assert.Equal(t, StatusFailure, status)
	})

	t.Run("ReturnsFailureForUnrecognizedStatus", func(t *testing.T) {

		build := &teamcityapi.Build{Status: "SOMETHING_NEW"}

		// act
		status := NormalizeBuildStatus(build)

		assert.Equal(t, StatusFailure, status)
	})

	t.Run("AlwaysReturnsOneOfTheThreeCanonicalValues", func(t *testing.T) {

		builds := []*teamcityapi.Build{
			nil,
			{Status: teamcityapi.BuildStatusSuccess},
			{Status: teamcityapi.BuildStatusFailure},
			{Status: teamcityapi.BuildStatusError},
			{Status: teamcityapi.BuildStatusUnknown},
			{Status: ""},
			{Status: "PARTIAL"},
		}

		for _, build := range builds {
			// act
			status := NormalizeBuildStatus(build)

			assert.Contains(t, []float64{StatusSuccess, StatusFailure, StatusNoBuilds}, status)
		}
	})
}
