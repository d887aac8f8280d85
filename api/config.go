package api

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// APIConfig represents the configuration for the entire exporter application
type APIConfig struct {
	TeamCity *TeamCityConfig
	Poller   *PollerConfig
	Server   *ServerConfig
}

// TeamCityConfig contains the settings for communicating with the TeamCity rest api
type TeamCityConfig struct {
	ServerURL   string
	Token       string
	TemplateIDs []string
}

// PollerConfig controls the interval and fan-out of the poll loop
type PollerConfig struct {
	Interval         time.Duration
	FetchConcurrency int
}

// ServerConfig configures the http surface serving the scrape endpoint
type ServerConfig struct {
	ListenAddress string
	MetricsPath   string
}

// Validate returns an error for any missing required setting; the process must not start serving in that case
func (c *APIConfig) Validate() error {

	if c.TeamCity == nil || c.TeamCity.ServerURL == "" {
		return errors.New("teamcity server url is required, set it via TEAMCITY_URL")
	}
	if c.TeamCity.Token == "" {
		return errors.New("teamcity api token is required, set it via TEAMCITY_TOKEN")
	}
	if len(c.TeamCity.TemplateIDs) == 0 {
		return errors.New("at least one template id is required, set them via TEAMCITY_TEMPLATE_IDS")
	}
	if c.Poller == nil || c.Poller.Interval <= 0 {
		return errors.New("poll interval must be larger than zero")
	}
	if c.Poller.FetchConcurrency <= 0 {
		return errors.New("fetch concurrency must be larger than zero")
	}
	if c.Server == nil || c.Server.ListenAddress == "" {
		return errors.New("listen address is required")
	}
	if c.Server.MetricsPath == "" || !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.New("metrics path must start with a slash")
	}

	return nil
}

// SplitTemplateIDs turns the comma-separated TEAMCITY_TEMPLATE_IDS value into a deduplicated list of template ids
func SplitTemplateIDs(value string) (templateIDs []string) {

	templateIDs = []string{}
	for _, id := range strings.Split(value, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if StringArrayContains(templateIDs, id) {
			continue
		}
		templateIDs = append(templateIDs, id)
	}

	return
}
