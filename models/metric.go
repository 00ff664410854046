package models

// RGB is a 24-bit color used for report badges and fills.
type RGB struct {
	R, G, B int
}

// LightGrey is the fallback badge color for unknown severities and statuses.
var LightGrey = RGB{0xD3, 0xD3, 0xD3}

// Metric identifies one of the fixed metrics shown in the report summary.
type Metric struct {
	// Key is the SonarQube metric key (e.g. "ncloc").
	Key string
	// Label is the human-readable name shown under the value.
	Label string
	// Suffix is appended to present values ("%" for ratios).
	Suffix string
}

// SummaryMetrics is the fixed 2x3 grid of metrics requested from the server
// and rendered in the report, in display order.
var SummaryMetrics = []Metric{
	{Key: "bugs", Label: "Bugs"},
	{Key: "vulnerabilities", Label: "Vulnerabilities"},
	{Key: "code_smells", Label: "Code Smells"},
	{Key: "coverage", Label: "Coverage", Suffix: "%"},
	{Key: "duplicated_lines_density", Label: "Duplications", Suffix: "%"},
	{Key: "ncloc", Label: "Lines of Code"},
}

// MetricKeys returns the metric keys in request order, for the
// comma-joined metricKeys query parameter.
func MetricKeys() []string {
	keys := make([]string, len(SummaryMetrics))
	for i, m := range SummaryMetrics {
		keys[i] = m.Key
	}
	return keys
}
