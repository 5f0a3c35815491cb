package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is an independent delivery medium with its own recipient set and counters.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	// Future channels (whatsapp, push, ...) are added here.
)

// Channels lists every channel the engine knows how to dispatch.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS}
}

// KnownChannel reports whether ch is a member of the channel enumeration.
func KnownChannel(ch Channel) bool {
	for _, known := range Channels() {
		if ch == known {
			return true
		}
	}
	return false
}

// Job lifecycle statuses.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// MessageJob represents one batch messaging campaign spanning one or more channels.
type MessageJob struct {
	ID       uuid.UUID `json:"id"`
	Subject  string    `json:"subject"`  // required only when the email channel is enabled
	Body     string    `json:"body"`     // message content
	SMSBody  string    `json:"sms_body"` // optional SMS-specific text; falls back to Body
	Channels []Channel `json:"channels"` // enabled channels, non-empty
	Status   string    `json:"status"`   // pending, processing, completed, failed

	// Per-channel delivery tracking.
	EmailTotalRecipients int `json:"email_total_recipients"`
	EmailSentCount       int `json:"email_sent_count"`
	EmailFailedCount     int `json:"email_failed_count"`
	SMSTotalRecipients   int `json:"sms_total_recipients"`
	SMSSentCount         int `json:"sms_sent_count"`
	SMSFailedCount       int `json:"sms_failed_count"`

	// Legacy aggregate fields kept for backward API compatibility; they mirror
	// the email channel counters.
	TotalRecipients int `json:"total_recipients"`
	SentCount       int `json:"sent_count"`
	FailedCount     int `json:"failed_count"`

	ErrorMessage string     `json:"error_message"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at"`   // nil until the first run claims the job
	CompletedAt  *time.Time `json:"completed_at"` // nil until the job reaches a terminal state
}

// HasChannel reports whether the given channel is enabled for this job.
func (j MessageJob) HasChannel(ch Channel) bool {
	for _, c := range j.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// SMSText returns the SMS message body, falling back to the main body when no
// SMS-specific text was provided.
func (j MessageJob) SMSText() string {
	if j.SMSBody != "" {
		return j.SMSBody
	}
	return j.Body
}

// Terminal reports whether the job has reached a final lifecycle state.
func (j MessageJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Progress computes a whole-number percentage of processed recipients.
// A channel with no recipients reports 0.
func Progress(sent, failed, total int) int {
	if total == 0 {
		return 0
	}
	return (sent + failed) * 100 / total
}

// EmailProgress returns the email channel progress percentage.
func (j MessageJob) EmailProgress() int {
	return Progress(j.EmailSentCount, j.EmailFailedCount, j.EmailTotalRecipients)
}

// SMSProgress returns the SMS channel progress percentage.
func (j MessageJob) SMSProgress() int {
	return Progress(j.SMSSentCount, j.SMSFailedCount, j.SMSTotalRecipients)
}

// OverallProgress aggregates processed and total counts across every channel.
func (j MessageJob) OverallProgress() int {
	return Progress(
		j.EmailSentCount+j.SMSSentCount,
		j.EmailFailedCount+j.SMSFailedCount,
		j.EmailTotalRecipients+j.SMSTotalRecipients,
	)
}
