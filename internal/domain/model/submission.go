package model

import (
	"time"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
)

// Submission is a unit of user-contributed material awaiting moderation.
// Body is always present: it is either the typed text or the mandatory
// caption of the attached photo/video. At most one of PhotoID/VideoID is set.
type Submission struct {
	ID              int64
	AuthorID        int64
	Body            string
	PhotoID         string
	VideoID         string
	Status          enums.SubmissionStatus
	RejectionReason string
	AcceptComment   string
	CreatedAt       time.Time
	DecidedAt       *time.Time
	DecidedBy       *int64
}
