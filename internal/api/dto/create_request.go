package dto

// CreateJobRequest is the body for opening a new messaging job. Channels is
// optional and defaults to every known channel.
type CreateJobRequest struct {
	Subject  string   `json:"subject"`
	Body     string   `json:"body" validate:"required"`
	SMSBody  string   `json:"sms_body"`
	Channels []string `json:"channels"`
}
