package worker

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/rabbitmq/queue"
)

type jobQueue interface {
	Consume(out chan<- queue.JobMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy)
}

// Runner drains the job run queue with a fixed pool of workers.
type Runner struct {
	queue   jobQueue
	handler messageHandler
}

func NewRunner(q jobQueue, h messageHandler) *Runner {
	return &Runner{
		queue:   q,
		handler: h,
	}
}

// Run blocks until ctx is done. Each worker handles one job run at a time.
func (r *Runner) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	msgChan := make(chan queue.JobMessage)

	go func() {
		if err := r.queue.Consume(msgChan, strategy); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to consume messages")
		}
	}()

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case msg := <-msgChan:
					r.handler.HandleMessage(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	zlog.Logger.Print("job runner stopped")
}
