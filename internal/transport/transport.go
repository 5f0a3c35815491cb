// Package transport provides the pluggable provider abstraction used to
// deliver job messages. Concrete providers are selected by logical name
// through a Registry at process start, so the dispatch pipeline never knows
// which provider it is talking to.
package transport

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured marks a provider whose credentials are missing. It is a
	// configuration error, never converted into per-recipient failures: the
	// dispatcher aborts the channel and leaves its recipients pending.
	ErrNotConfigured = errors.New("transport not configured")

	// ErrUnknownTransport is returned by the registry for unregistered names.
	ErrUnknownTransport = errors.New("unknown transport")
)

// Message is the channel-agnostic payload of one send. SMS providers ignore
// the subject.
type Message struct {
	Subject string
	Body    string
}

// Result is the tagged outcome of one destination's send attempt.
type Result struct {
	Provider string
	To       string
	Err      error // nil means the message was handed to the provider
}

// Sent reports whether the destination was delivered to the provider.
func (r Result) Sent() bool { return r.Err == nil }

// Error is a typed transport failure carrying the provider that produced it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transport sends one message to one or many destinations. Implementations
// constructed in fail-silently mode convert provider failures into failed
// Results instead of returning an error; configuration errors are never
// silenced.
type Transport interface {
	Name() string
	Send(ctx context.Context, to string, msg Message) (Result, error)
	SendBulk(ctx context.Context, recipients []string, msg Message) ([]Result, error)
}

// SendEach implements SendBulk for providers without native multi-recipient
// support by sending to each destination in turn. Send is responsible for the
// fail-silently conversion, so any error returned here aborts the whole call.
func SendEach(ctx context.Context, t Transport, recipients []string, msg Message) ([]Result, error) {
	results := make([]Result, 0, len(recipients))
	for _, to := range recipients {
		res, err := t.Send(ctx, to, msg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func sentResults(provider string, recipients []string) []Result {
	results := make([]Result, 0, len(recipients))
	for _, to := range recipients {
		results = append(results, Result{Provider: provider, To: to})
	}
	return results
}

func failedResults(provider string, recipients []string, err error) []Result {
	results := make([]Result, 0, len(recipients))
	for _, to := range recipients {
		results = append(results, Result{Provider: provider, To: to, Err: err})
	}
	return results
}
