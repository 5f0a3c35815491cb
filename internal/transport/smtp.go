package transport

import (
	"context"

	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/pkg/mailer"
)

// SMTP delivers email through a plain SMTP relay. The provider has no
// multi-recipient call, so bulk sends go out one message per address.
type SMTP struct {
	client       *mailer.Client
	cfg          config.Email
	failSilently bool
}

func NewSMTP(cfg config.Email, failSilently bool) *SMTP {
	return &SMTP{
		client:       mailer.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password, cfg.From, cfg.FromName),
		cfg:          cfg,
		failSilently: failSilently,
	}
}

func (s *SMTP) Name() string { return "smtp" }

func (s *SMTP) configured() bool {
	return s.cfg.SMTPHost != "" && s.cfg.From != ""
}

func (s *SMTP) Send(_ context.Context, to string, msg Message) (Result, error) {
	if !s.configured() {
		return Result{}, &Error{Provider: s.Name(), Err: ErrNotConfigured}
	}

	if err := s.client.Send(to, msg.Subject, msg.Body); err != nil {
		werr := &Error{Provider: s.Name(), Err: err}
		if !s.failSilently {
			return Result{}, werr
		}
		return Result{Provider: s.Name(), To: to, Err: werr}, nil
	}

	return Result{Provider: s.Name(), To: to}, nil
}

func (s *SMTP) SendBulk(ctx context.Context, recipients []string, msg Message) ([]Result, error) {
	return SendEach(ctx, s, recipients, msg)
}
