package teamcityapi

// Build statuses as reported by the teamcity rest api for finished builds
const (
	BuildStatusSuccess = "SUCCESS"
	BuildStatusFailure = "FAILURE"
	BuildStatusError   = "ERROR"
	BuildStatusUnknown = "UNKNOWN"
)

// BuildType represents a teamcity build configuration inheriting from a template
type BuildType struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProjectID  string `json:"projectId,omitempty"`
	Paused     bool   `json:"paused,omitempty"`
	WebURL     string `json:"webUrl"`
	TemplateID string `json:"-"`
}

type buildTypesResponse struct {
	Count      int         `json:"count"`
	BuildTypes []BuildType `json:"buildType"`
}

// Build represents the most recent finished build for a build configuration
type Build struct {
	ID          int64  `json:"id"`
	BuildTypeID string `json:"buildTypeId"`
	Number      string `json:"number,omitempty"`
	Status      string `json:"status"`
	State       string `json:"state"`
	WebURL      string `json:"webUrl"`
}

type buildsResponse struct {
	Count  int     `json:"count"`
	Builds []Build `json:"build"`
}
