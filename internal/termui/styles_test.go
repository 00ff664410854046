package termui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateBanner(t *testing.T) {
	assert.Contains(t, GateBanner("OK"), "Quality Gate: PASSED")
	assert.Contains(t, GateBanner("ERROR"), "Quality Gate: FAILED")

	banner := GateBanner("NONE")
	assert.Contains(t, banner, "Quality Gate: NONE")
	assert.NotContains(t, banner, "PASSED")
	assert.NotContains(t, banner, "FAILED")
}

func TestMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	MetricsTable(&buf, map[string]string{
		"bugs":     "3",
		"coverage": "N/A",
	})

	out := buf.String()
	assert.Contains(t, out, "Bugs")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Lines of Code")
}
