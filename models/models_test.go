package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityColorFallback(t *testing.T) {
	assert.Equal(t, RGB{0xB4, 0x04, 0x04}, SeverityBlocker.Color())
	assert.Equal(t, LightGrey, Severity("SOMETHING_NEW").Color())
}

func TestStatusColorFallback(t *testing.T) {
	assert.Equal(t, RGB{0x08, 0x8A, 0x08}, StatusResolved.Color())
	assert.Equal(t, LightGrey, StatusToReview.Color())
	assert.Equal(t, LightGrey, Status("ACCEPTED").Color())
}

func TestMetricKeysOrder(t *testing.T) {
	assert.Equal(t, []string{
		"bugs", "vulnerabilities", "code_smells",
		"coverage", "duplicated_lines_density", "ncloc",
	}, MetricKeys())
}
