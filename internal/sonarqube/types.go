package sonarqube

import (
	"time"

	"github.com/sonartools/sonarpdf/models"
)

// Measure is a single metric value as returned by api/measures/component.
type Measure struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// measuresResponse is the body of api/measures/component. A missing
// "component" field means the server returned no usable data.
type measuresResponse struct {
	Component *struct {
		Key      string    `json:"key"`
		Measures []Measure `json:"measures"`
	} `json:"component"`
}

// GateCondition is one threshold condition of a quality gate evaluation.
type GateCondition struct {
	Status           string `json:"status"`
	MetricKey        string `json:"metricKey"`
	Comparator       string `json:"comparator"`
	ErrorThreshold   string `json:"errorThreshold"`
	ActualValue      string `json:"actualValue"`
	LastAnalysisTime string `json:"lastAnalysisTime"`
}

// GateStatus is the projectStatus object of api/qualitygates/project_status.
type GateStatus struct {
	Status     string          `json:"status"`
	Conditions []GateCondition `json:"conditions"`
}

type gateResponse struct {
	ProjectStatus *GateStatus `json:"projectStatus"`
}

// Comment is a user comment attached to an issue.
type Comment struct {
	CreatedAt string `json:"createdAt"`
	Login     string `json:"login"`
	Markdown  string `json:"markdown"`
}

// Diff is a single field transition within a changelog entry.
type Diff struct {
	Key      string `json:"key"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// ChangelogEntry is one recorded change to an issue.
type ChangelogEntry struct {
	CreatedAt string `json:"createdAt"`
	User      struct {
		Name string `json:"name"`
	} `json:"user"`
	Diffs []Diff `json:"diffs"`
}

// Issue is a single finding returned by api/issues/search, including the
// inline history requested via additionalFields=_all.
type Issue struct {
	Key        string           `json:"key"`
	Severity   models.Severity  `json:"severity"`
	Status     models.Status    `json:"status"`
	Resolution string           `json:"resolution"`
	Component  string           `json:"component"`
	Line       int              `json:"line"`
	Message    string           `json:"message"`
	Comments   []Comment        `json:"comments"`
	Changelog  []ChangelogEntry `json:"changelog"`
}

type searchResponse struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// sonarTimeLayout matches SonarQube's timestamp format, which writes the
// zone offset without a colon (2014-09-05T12:15:40+0200).
const sonarTimeLayout = "2006-01-02T15:04:05-0700"

// ParseTime parses a SonarQube timestamp. The second return value is false
// when the string is empty or not a recognised timestamp.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(sonarTimeLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
