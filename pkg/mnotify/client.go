// Package mnotify provides a client for the MNotify quick-SMS HTTP API.
//
// The quick endpoint accepts a list of recipients in a single call, so one
// request covers a whole batch. Designed to be used as an SMS provider in the
// messenger dispatch pipeline.
package mnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIURL = "https://api.mnotify.com/api/sms/quick"

	// successCode is the provider's application-level success marker; the HTTP
	// status alone does not confirm delivery.
	successCode = "2000"
)

// Client represents an MNotify client used to send SMS messages.
type Client struct {
	apiKey   string        // account API key, passed as a query parameter
	senderID string        // registered sender name shown to recipients
	apiURL   string        // quick-SMS endpoint
	client   *http.Client  // HTTP client used to make requests
	limiter  *rate.Limiter // optional request throttle, nil when unlimited
}

// NewClient creates a new MNotify Client. An empty apiURL selects the public
// endpoint; ratePerSec <= 0 disables throttling.
func NewClient(apiKey, senderID, apiURL string, ratePerSec int) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}

	return &Client{
		apiKey:   apiKey,
		senderID: senderID,
		apiURL:   apiURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  limiter,
	}
}

// quickSMSRequest represents the payload for the MNotify quick-SMS API.
type quickSMSRequest struct {
	Recipient    []string `json:"recipient"`     // destination phone numbers
	Sender       string   `json:"sender"`        // sender id
	Message      string   `json:"message"`       // message text
	IsSchedule   bool     `json:"is_schedule"`   // always false, immediate send
	ScheduleDate string   `json:"schedule_date"` // unused, required by the API
}

// quickSMSResponse is the subset of the API response the client inspects.
type quickSMSResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send delivers one message to every recipient in a single API call.
//
// It constructs the request payload, sends an HTTP POST to the quick-SMS
// endpoint, and returns an error if the request fails, the API responds with a
// non-200 status or the response carries a non-success code.
func (c *Client) Send(ctx context.Context, recipients []string, msg string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	url := fmt.Sprintf("%s?key=%s", c.apiURL, c.apiKey)

	reqBody := quickSMSRequest{
		Recipient: recipients,
		Sender:    c.senderID,
		Message:   msg,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mnotify API status: %s", resp.Status)
	}

	var apiResp quickSMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Code != successCode {
		return fmt.Errorf("mnotify API error: code %s: %s", apiResp.Code, apiResp.Message)
	}

	return nil
}
