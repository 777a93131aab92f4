package enums

import "strings"

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "PENDING"
	StatusApproved SubmissionStatus = "APPROVED"
	StatusRejected SubmissionStatus = "REJECTED"
)

func ParseSubmissionStatus(raw string) SubmissionStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(StatusApproved):
		return StatusApproved
	case string(StatusRejected):
		return StatusRejected
	default:
		return StatusPending
	}
}

// Terminal reports whether no further transition is defined for the status.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
