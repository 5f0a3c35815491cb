package transport

import (
	"context"

	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/pkg/mnotify"
)

// MNotify delivers SMS through the MNotify quick-SMS API. The API is natively
// bulk: one call carries the whole recipient list, and the outcome applies to
// every number in it.
type MNotify struct {
	client       *mnotify.Client
	cfg          config.MNotify
	failSilently bool
}

func NewMNotify(cfg config.MNotify, failSilently bool) *MNotify {
	return &MNotify{
		client:       mnotify.NewClient(cfg.APIKey, cfg.SenderID, cfg.APIURL, cfg.RatePerSec),
		cfg:          cfg,
		failSilently: failSilently,
	}
}

func (m *MNotify) Name() string { return "mnotify" }

func (m *MNotify) configured() bool {
	return m.cfg.APIKey != "" && m.cfg.SenderID != ""
}

func (m *MNotify) Send(ctx context.Context, to string, msg Message) (Result, error) {
	results, err := m.SendBulk(ctx, []string{to}, msg)
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

func (m *MNotify) SendBulk(ctx context.Context, recipients []string, msg Message) ([]Result, error) {
	if !m.configured() {
		return nil, &Error{Provider: m.Name(), Err: ErrNotConfigured}
	}
	if len(recipients) == 0 {
		return nil, nil
	}

	if err := m.client.Send(ctx, recipients, msg.Body); err != nil {
		werr := &Error{Provider: m.Name(), Err: err}
		if !m.failSilently {
			return nil, werr
		}
		return failedResults(m.Name(), recipients, werr), nil
	}

	return sentResults(m.Name(), recipients), nil
}
