package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonartools/sonarpdf/internal/sonarqube"
	"github.com/sonartools/sonarpdf/models"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
}

func sampleData() Data {
	return Data{
		ProjectKey: "my-project",
		Metrics: map[string]string{
			"bugs":     "3",
			"coverage": "81.5",
			"ncloc":    "N/A",
		},
		Gate: &sonarqube.GateStatus{
			Status: "ERROR",
			Conditions: []sonarqube.GateCondition{
				{MetricKey: "coverage", LastAnalysisTime: "2024-06-14T08:00:00+0000"},
			},
		},
		Issues: []sonarqube.Issue{
			{
				Key:        "ISSUE-1",
				Severity:   models.SeverityCritical,
				Status:     models.StatusResolved,
				Resolution: "FIXED",
				Component:  "my-project:src/main.go",
				Line:       42,
				Message:    "Remove this unused variable.",
				Comments: []sonarqube.Comment{
					{CreatedAt: "2024-06-01T10:00:00+0000", Login: "alice", Markdown: "fixed in <next> release & closed"},
				},
				Changelog: []sonarqube.ChangelogEntry{
					{
						CreatedAt: "2024-05-30T10:00:00+0000",
						Diffs:     []sonarqube.Diff{{Key: "status", OldValue: "OPEN", NewValue: "RESOLVED"}},
					},
				},
			},
			{
				Key:       "ISSUE-2",
				Severity:  models.SeverityInfo,
				Status:    models.StatusOpen,
				Component: "my-project:README.md",
				Message:   "Trailing whitespace.",
			},
		},
	}
}

func TestBuildProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, build(sampleData(), &buf, fixedClock))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"), "output must be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestBuildIsDeterministicWithFixedClock(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, build(sampleData(), &a, fixedClock))
	require.NoError(t, build(sampleData(), &b, fixedClock))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestBuildWithNoIssues(t *testing.T) {
	data := sampleData()
	data.Issues = nil

	var buf bytes.Buffer
	require.NoError(t, build(data, &buf, fixedClock))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestBuildWithManyIssues(t *testing.T) {
	data := sampleData()
	base := data.Issues[0]
	data.Issues = nil
	for i := 0; i < 60; i++ {
		data.Issues = append(data.Issues, base)
	}

	var buf bytes.Buffer
	require.NoError(t, build(data, &buf, fixedClock))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestGateVerdict(t *testing.T) {
	tests := []struct {
		status    string
		wantLabel string
		wantColor models.RGB
	}{
		{"OK", "PASSED", models.RGB{R: 0x00, G: 0x80, B: 0x00}},
		{"ERROR", "FAILED", models.RGB{R: 0xFF, G: 0x00, B: 0x00}},
		{"NONE", "NONE", models.RGB{R: 0xFF, G: 0xA5, B: 0x00}},
		{"UNKNOWN", "UNKNOWN", models.RGB{R: 0xFF, G: 0xA5, B: 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			label, color := GateVerdict(tt.status)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestMetricDisplay(t *testing.T) {
	metrics := map[string]string{
		"bugs":     "7",
		"coverage": "81.5",
		"ncloc":    "N/A",
	}

	bugs := models.Metric{Key: "bugs", Label: "Bugs"}
	coverage := models.Metric{Key: "coverage", Label: "Coverage", Suffix: "%"}
	ncloc := models.Metric{Key: "ncloc", Label: "Lines of Code"}
	missing := models.Metric{Key: "vulnerabilities", Label: "Vulnerabilities"}

	assert.Equal(t, "7", MetricDisplay(metrics, bugs))
	assert.Equal(t, "81.5%", MetricDisplay(metrics, coverage))
	assert.Equal(t, "N/A", MetricDisplay(metrics, ncloc), "an explicit N/A must not render as 0")
	assert.Equal(t, "0", MetricDisplay(metrics, missing), "a missing key renders as 0")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "sonarqube_report_my-project.pdf", Filename("my-project"))
}
