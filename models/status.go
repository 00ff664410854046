package models

// Status represents the workflow status of a SonarQube issue.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusConfirmed Status = "CONFIRMED"
	StatusReopened  Status = "REOPENED"
	StatusResolved  Status = "RESOLVED"
	StatusClosed    Status = "CLOSED"
	StatusToReview  Status = "TO_REVIEW"
)

// AllStatuses lists every status requested from the issue search endpoint.
var AllStatuses = []Status{
	StatusOpen,
	StatusConfirmed,
	StatusReopened,
	StatusResolved,
	StatusClosed,
	StatusToReview,
}

func (s Status) String() string {
	return string(s)
}

// Color returns the badge color used for this status in the report.
// Statuses without a dedicated color (including TO_REVIEW) fall back to
// light grey.
func (s Status) Color() RGB {
	switch s {
	case StatusOpen:
		return RGB{0xFA, 0xCC, 0x2E}
	case StatusReopened:
		return RGB{0xFF, 0x80, 0x00}
	case StatusConfirmed:
		return RGB{0x00, 0x80, 0xFF}
	case StatusResolved:
		return RGB{0x08, 0x8A, 0x08}
	case StatusClosed:
		return RGB{0x58, 0x58, 0x58}
	default:
		return LightGrey
	}
}
