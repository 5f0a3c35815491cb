package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/estatekit/messenger/internal/rabbitmq/queue"
)

type stubQueue struct {
	msgs []queue.JobMessage
}

func (q *stubQueue) Consume(out chan<- queue.JobMessage, _ retry.Strategy) error {
	for _, m := range q.msgs {
		out <- m
	}
	return nil
}

type countingHandler struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (h *countingHandler) HandleMessage(_ context.Context, msg queue.JobMessage, _ retry.Strategy) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, msg.ID)
}

func (h *countingHandler) handled() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ids)
}

func TestRunner_DrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &stubQueue{msgs: []queue.JobMessage{
		{ID: uuid.New()},
		{ID: uuid.New()},
		{ID: uuid.New()},
	}}
	h := &countingHandler{}

	go NewRunner(q, h).Run(ctx, retry.Strategy{}, 2)

	assert.Eventually(t, func() bool { return h.handled() == 3 }, time.Second, 10*time.Millisecond)
}

func TestRunner_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := &stubQueue{}
	h := &countingHandler{}

	done := make(chan struct{})
	go func() {
		NewRunner(q, h).Run(ctx, retry.Strategy{}, 1)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after context cancel")
	}
	assert.Zero(t, h.handled())
}
