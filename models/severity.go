package models

// Severity represents the severity of a SonarQube issue.
type Severity string

const (
	SeverityBlocker  Severity = "BLOCKER"
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
	SeverityInfo     Severity = "INFO"
)

func (s Severity) String() string {
	return string(s)
}

// Color returns the badge color used for this severity in the report.
// Unknown severities fall back to light grey.
func (s Severity) Color() RGB {
	switch s {
	case SeverityBlocker:
		return RGB{0xB4, 0x04, 0x04}
	case SeverityCritical:
		return RGB{0xFF, 0x00, 0x00}
	case SeverityMajor:
		return RGB{0xFF, 0x80, 0x00}
	case SeverityMinor:
		return RGB{0xFA, 0xCC, 0x2E}
	case SeverityInfo:
		return RGB{0x00, 0x80, 0xFF}
	default:
		return LightGrey
	}
}
