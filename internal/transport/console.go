package transport

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/zlog"
)

// Delivery is one message accepted by the console provider.
type Delivery struct {
	To      string
	Subject string
	Body    string
}

// Console is the development provider: it logs every message, records it for
// inspection and always succeeds.
type Console struct {
	mu        sync.Mutex
	delivered []Delivery
}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, to string, msg Message) (Result, error) {
	c.mu.Lock()
	c.delivered = append(c.delivered, Delivery{To: to, Subject: msg.Subject, Body: msg.Body})
	c.mu.Unlock()

	zlog.Logger.Info().
		Str("to", to).
		Str("subject", msg.Subject).
		Msg("console transport delivery")

	return Result{Provider: c.Name(), To: to}, nil
}

func (c *Console) SendBulk(ctx context.Context, recipients []string, msg Message) ([]Result, error) {
	return SendEach(ctx, c, recipients, msg)
}

// Delivered returns a copy of every message accepted so far.
func (c *Console) Delivered() []Delivery {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Delivery, len(c.delivered))
	copy(out, c.delivered)
	return out
}
