package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *APIConfig {
	return &APIConfig{
		TeamCity: &TeamCityConfig{
			ServerURL:   "https://teamcity.example.com",
			Token:       "abc",
			TemplateIDs: []string{"MyTemplate"},
		},
		Poller: &PollerConfig{
			Interval:         600 * time.Second,
			FetchConcurrency: 10,
		},
		Server: &ServerConfig{
			ListenAddress: ":8000",
			MetricsPath:   "/metrics",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("ReturnsNoErrorForCompleteConfig", func(t *testing.T) {

		config := validConfig()

		// act
		err := config.Validate()

		assert.Nil(t, err)
	})

	t.Run("ReturnsErrorWhenServerURLIsMissing", func(t *testing.T) {

		config := validConfig()
		config.TeamCity.ServerURL = ""

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenTokenIsMissing", func(t *testing.T) {

		config := validConfig()
		config.TeamCity.Token = ""

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenNoTemplateIDsAreConfigured", func(t *testing.T) {

		config := validConfig()
		config.TeamCity.TemplateIDs = []string{}

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenIntervalIsZero", func(t *testing.T) {

		config := validConfig()
		config.Poller.Interval = 0

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenFetchConcurrencyIsZero", func(t *testing.T) {

		config := validConfig()
		config.Poller.FetchConcurrency = 0

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorWhenMetricsPathDoesNotStartWithSlash", func(t *testing.T) {

		config := validConfig()
		config.Server.MetricsPath = "metrics"

		// act
		err := config.Validate()

		assert.NotNil(t, err)
	})
}

func TestSplitTemplateIDs(t *testing.T) {
	t.Run("SplitsCommaSeparatedValue", func(t *testing.T) {

		// act
		templateIDs := SplitTemplateIDs("TemplateA,TemplateB")

		assert.Equal(t, []string{"TemplateA", "TemplateB"}, templateIDs)
	})

	t.Run("TrimsSurroundingWhitespace", func(t *testing.T) {

		// act
		templateIDs := SplitTemplateIDs(" TemplateA , TemplateB ")

		assert.Equal(t, []string{"TemplateA", "TemplateB"}, templateIDs)
	})

	t.Run("DropsEmptyItems", func(t *testing.T) {

		// act
		templateIDs := SplitTemplateIDs("TemplateA,,TemplateB,")

		assert.Equal(t, []string{"TemplateA", "TemplateB"}, templateIDs)
	})

	t.Run("CollapsesDuplicates", func(t *testing.T) {

		// act
		templateIDs := SplitTemplateIDs("TemplateA,TemplateB,TemplateA")

		assert.Equal(t, []string{"TemplateA", "TemplateB"}, templateIDs)
	})

	t.Run("ReturnsEmptyListForEmptyValue", func(t *testing.T) {

		// act
		templateIDs := SplitTemplateIDs("")

		assert.Empty(t, templateIDs)
	})
}
