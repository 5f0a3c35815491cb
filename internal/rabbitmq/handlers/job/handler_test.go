package job

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/estatekit/messenger/internal/rabbitmq/queue"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls int
	errs  []error // returned in order, nil past the end
}

func (f *fakeRunner) Run(_ context.Context, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= len(f.errs) {
		return f.errs[f.calls-1]
	}
	return nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestHandleMessage_RunsOnce(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner)

	h.HandleMessage(context.Background(), queue.JobMessage{ID: uuid.New()}, retry.Strategy{Attempts: 3})

	assert.Equal(t, 1, runner.callCount())
}

func TestHandleMessage_RetriesTransientError(t *testing.T) {
	runner := &fakeRunner{errs: []error{errors.New("connection refused")}}
	h := NewHandler(runner)

	h.HandleMessage(context.Background(), queue.JobMessage{ID: uuid.New()}, retry.Strategy{Attempts: 3})

	assert.Equal(t, 2, runner.callCount())
}

func TestHandleMessage_GivesUpAfterAttempts(t *testing.T) {
	err := errors.New("connection refused")
	runner := &fakeRunner{errs: []error{err, err, err}}
	h := NewHandler(runner)

	h.HandleMessage(context.Background(), queue.JobMessage{ID: uuid.New()}, retry.Strategy{Attempts: 3})

	assert.Equal(t, 3, runner.callCount())
}
