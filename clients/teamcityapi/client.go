package teamcityapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
)

// Client is the interface for communicating with the teamcity rest api
type Client interface {
	GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error)
	GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error)
}

// NewClient creates a teamcityapi.Client to communicate with the teamcity rest api
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// GetBuildTypesForTemplate returns all build configurations inheriting from a template; the locator already excludes paused ones
func (c *client) GetBuildTypesForTemplate(ctx context.Context, templateID string) (buildTypes []BuildType, err error) {

	// https://www.jetbrains.com/help/teamcity/rest/buildtypelocator.html
	url := fmt.Sprintf("%v/app/rest/buildTypes?locator=template:%v,paused:false", c.baseURL(), templateID)

	body, err := c.callTeamcityAPI(ctx, "GET", url)
	if err != nil {
		return
	}

	var response buildTypesResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return buildTypes, errors.Wrapf(err, "Deserializing build types response for template %v failed", templateID)
	}

	buildTypes = response.BuildTypes
	for i := range buildTypes {
		buildTypes[i].TemplateID = templateID
	}

	return
}

// GetLastBuild returns the most recent finished build for a build configuration, or nil when no build ever ran
func (c *client) GetLastBuild(ctx context.Context, buildTypeID string) (build *Build, err error) {

	// https://www.jetbrains.com/help/teamcity/rest/buildlocator.html; the default locator only matches finished builds
	url := fmt.Sprintf("%v/app/rest/builds?locator=buildType:%v,count:1", c.baseURL(), buildTypeID)

	body, err := c.callTeamcityAPI(ctx, "GET", url)
	if err != nil {
		return
	}

	var response buildsResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return build, errors.Wrapf(err, "Deserializing builds response for build configuration %v failed", buildTypeID)
	}

	if len(response.Builds) == 0 {
		return nil, nil
	}

	return &response.Builds[0], nil
}

func (c *client) baseURL() string {
	return strings.TrimRight(c.config.TeamCity.ServerURL, "/")
}

func (c *client) callTeamcityAPI(ctx context.Context, method, url string) (body []byte, err error) {

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10

	request, err := http.NewRequest(method, url, nil)
	if err != nil {
		return
	}
	request = request.WithContext(ctx)

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Authorization", fmt.Sprintf("Bearer %v", c.config.TeamCity.Token))
	request.Header.Add("Accept", "application/json")

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return
	}

	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return body, errors.Errorf("%v %v responded with status code %v", method, url, response.StatusCode)
	}

	return
}
