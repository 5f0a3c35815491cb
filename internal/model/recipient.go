package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipient delivery statuses.
const (
	RecipientStatusPending = "pending"
	RecipientStatusSent    = "sent"
	RecipientStatusFailed  = "failed"
)

// Recipient is one destination snapshotted for one job and channel. Email and SMS
// recipients are structurally identical and live in separate per-channel tables;
// Address holds the email address or phone number captured at job creation and is
// never recomputed, so later contact edits do not affect an in-flight job.
type Recipient struct {
	ID           uuid.UUID  `json:"id"`
	JobID        uuid.UUID  `json:"job_id"`
	ResidenceID  uuid.UUID  `json:"residence_id"` // display-only reference, not re-resolved
	Address      string     `json:"address"`
	Status       string     `json:"status"` // pending, sent, failed
	ErrorMessage string     `json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`
}
