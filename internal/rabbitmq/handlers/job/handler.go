package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/rabbitmq/queue"
)

type jobRunner interface {
	Run(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	runner jobRunner
}

func NewHandler(r jobRunner) *Handler {
	return &Handler{
		runner: r,
	}
}

// HandleMessage runs the job named by one queue message. A run error means
// the job row already carries the failure, so the attempts here only ride out
// transient storage outages; failed jobs stay claimable, so each attempt
// resumes from the recipient ledger instead of starting over.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy) {
	attempt := 0
	currentDelay := strategy.Delay

	for attempt < strategy.Attempts {
		err := h.runner.Run(ctx, msg.ID)
		if err == nil {
			zlog.Logger.Printf("job run %s finished", msg.ID)
			return
		}

		attempt++
		zlog.Logger.Printf("job run %s failed: %v, retry %d/%d",
			msg.ID, err, attempt, strategy.Attempts,
		)

		time.Sleep(currentDelay)
		currentDelay = time.Duration(float64(currentDelay) * strategy.Backoff)
	}

	zlog.Logger.Printf("job %s gave up after %d attempts, dropping message", msg.ID, attempt)
}
