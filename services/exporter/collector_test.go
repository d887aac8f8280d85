package exporter

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBuildStatusCollector(t *testing.T) {
	t.Run("EmitsOneLinePerSampleInTheCurrentSnapshot", func(t *testing.T) {

		store := NewStore()
		store.Install(Snapshot{
			SampleKey{TemplateID: "T1", BuildTypeID: "A"}: {
				Key:           SampleKey{TemplateID: "T1", BuildTypeID: "A"},
				BuildTypeName: "Build A",
				BuildURL:      "https://teamcity.example.com/viewType.html?buildTypeId=A",
				Status:        StatusSuccess,
			},
			SampleKey{TemplateID: "T1", BuildTypeID: "B"}: {
				Key:           SampleKey{TemplateID: "T1", BuildTypeID: "B"},
				BuildTypeName: "Build B",
				BuildURL:      "https://teamcity.example.com/viewType.html?buildTypeId=B",
				Status:        StatusNoBuilds,
			},
		})
		collector := NewBuildStatusCollector(store)

		expected := `
# HELP teamcity_last_build_status Last build status for build configurations inheriting from a template.
# TYPE teamcity_last_build_status gauge
teamcity_last_build_status{build_type_id="A",build_type_name="Build A",build_url="https://teamcity.example.com/viewType.html?buildTypeId=A",template_id="T1"} 1
teamcity_last_build_status{build_type_id="B",build_type_name="Build B",build_url="https://teamcity.example.com/viewType.html?buildTypeId=B",template_id="T1"} -1
`

		// act
		err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

		assert.Nil(t, err)
	})

	t.Run("EmitsNothingForEmptyStore", func(t *testing.T) {

		store := NewStore()
		collector := NewBuildStatusCollector(store)

		// act
		count := testutil.CollectAndCount(collector)

		assert.Equal(t, 0, count)
	})

	t.Run("ServesSnapshotInstalledMostRecently", func(t *testing.T) {

		store := NewStore()
		store.Install(snapshotForStatuses(map[string]float64{"BuildA": StatusSuccess}))
		store.Install(snapshotForStatuses(map[string]float64{"BuildB": StatusFailure}))
		collector := NewBuildStatusCollector(store)

		// act
		count := testutil.CollectAndCount(collector)

		assert.Equal(t, 1, count)
	})
}
