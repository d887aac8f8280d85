package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

var buildStatusDesc = prometheus.NewDesc(
	"teamcity_last_build_status",
	"Last build status for build configurations inheriting from a template.",
	[]string{"template_id", "build_type_id", "build_type_name", "build_url"},
	nil,
)

// buildStatusCollector renders the currently installed snapshot on each scrape;
// it reads the store exactly once per scrape and never triggers a poll
type buildStatusCollector struct {
	store *Store
}

// NewBuildStatusCollector returns a prometheus.Collector serving one
// teamcity_last_build_status gauge per sample in the current snapshot
func NewBuildStatusCollector(store *Store) prometheus.Collector {
	return &buildStatusCollector{
		store: store,
	}
}

func (c *buildStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- buildStatusDesc
}

func (c *buildStatusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sample := range c.store.Current() {
		ch <- prometheus.MustNewConstMetric(
			buildStatusDesc,
			prometheus.GaugeValue,
			sample.Status,
			sample.Key.TemplateID,
			sample.Key.BuildTypeID,
			sample.BuildTypeName,
			sample.BuildURL,
		)
	}
}
