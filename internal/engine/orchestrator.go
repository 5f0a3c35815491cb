package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/model"
	"github.com/estatekit/messenger/internal/rabbitmq/queue"
	jobrepo "github.com/estatekit/messenger/internal/repository/job"
)

var ErrNoFailedRecipients = errors.New("no failed recipients to retry")

// jobStore is the slice of the job repository the orchestrator drives.
type jobStore interface {
	ClaimForRun(ctx context.Context, id uuid.UUID) (model.MessageJob, error)
	Finalize(ctx context.Context, id uuid.UUID) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	PrepareRetry(ctx context.Context, id uuid.UUID, resetEmail, resetSMS bool) error
	GetInFlightJobIDs(ctx context.Context) ([]uuid.UUID, error)
}

// retryLedger is the slice of the recipient repository used for retries.
type retryLedger interface {
	CountByStatus(ctx context.Context, ch model.Channel, jobID uuid.UUID, status string) (int, error)
	ResetFailed(ctx context.Context, ch model.Channel, jobID uuid.UUID) (int64, error)
}

// jobPublisher schedules job runs on the run queue.
type jobPublisher interface {
	Publish(msg queue.JobMessage, strategy retry.Strategy) error
}

// ChannelDispatcher runs one channel's share of a job.
type ChannelDispatcher interface {
	Run(ctx context.Context, job model.MessageJob) error
}

// Orchestrator drives whole job runs: claim, fan out one dispatcher goroutine
// per enabled channel, join, finalize. Runs are idempotent, so the same job
// message can be delivered or requeued any number of times.
type Orchestrator struct {
	jobs        jobStore
	ledger      retryLedger
	queue       jobPublisher
	dispatchers map[model.Channel]ChannelDispatcher
}

func NewOrchestrator(jobs jobStore, ledger retryLedger, q jobPublisher, dispatchers map[model.Channel]ChannelDispatcher) *Orchestrator {
	return &Orchestrator{
		jobs:        jobs,
		ledger:      ledger,
		queue:       q,
		dispatchers: dispatchers,
	}
}

// Start schedules a run for the job and returns without waiting for it.
func (o *Orchestrator) Start(_ context.Context, id uuid.UUID, strategy retry.Strategy) error {
	if err := o.queue.Publish(queue.JobMessage{ID: id}, strategy); err != nil {
		return fmt.Errorf("publish job run: %w", err)
	}

	zlog.Logger.Info().Str("job_id", id.String()).Msg("job run scheduled")

	return nil
}

// Run executes one job run to the end. A completed or otherwise non-runnable
// job is skipped quietly; orchestration errors outside the per-recipient send
// path mark the job failed. Channel dispatch errors only end that channel's
// pass, leaving its remaining recipients pending for a later run.
func (o *Orchestrator) Run(ctx context.Context, id uuid.UUID) error {
	job, err := o.jobs.ClaimForRun(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, jobrepo.ErrAlreadyCompleted):
			zlog.Logger.Info().Str("job_id", id.String()).Msg("job already completed, skipping run")
			return nil
		case errors.Is(err, jobrepo.ErrUnexpectedStatus):
			zlog.Logger.Warn().Err(err).Str("job_id", id.String()).Msg("job not runnable, skipping run")
			return nil
		case errors.Is(err, jobrepo.ErrJobNotFound):
			zlog.Logger.Warn().Str("job_id", id.String()).Msg("job not found, skipping run")
			return nil
		}

		o.fail(ctx, id, fmt.Errorf("claim job: %w", err))
		return err
	}

	var wg sync.WaitGroup
	for _, ch := range model.Channels() {
		if !job.HasChannel(ch) {
			continue
		}

		d, ok := o.dispatchers[ch]
		if !ok {
			zlog.Logger.Warn().
				Str("job_id", job.ID.String()).
				Str("channel", string(ch)).
				Msg("no dispatcher registered for channel")
			continue
		}

		wg.Add(1)
		go func(ch model.Channel, d ChannelDispatcher) {
			defer wg.Done()

			if err := d.Run(ctx, job); err != nil {
				zlog.Logger.Error().
					Err(err).
					Str("job_id", job.ID.String()).
					Str("channel", string(ch)).
					Msg("channel dispatch ended early")
			}
		}(ch, d)
	}
	wg.Wait()

	completed, err := o.jobs.Finalize(ctx, job.ID)
	if err != nil {
		o.fail(ctx, job.ID, fmt.Errorf("finalize job: %w", err))
		return err
	}

	if completed {
		zlog.Logger.Info().Str("job_id", job.ID.String()).Msg("job completed")
	} else {
		zlog.Logger.Info().Str("job_id", job.ID.String()).Msg("job left in flight, pending recipients remain")
	}

	return nil
}

// Retry resets every failed recipient back to pending, zeroes the matching
// failed counters and schedules a new run over the shrunken pending set.
// Recipients that were delivered keep their sent status.
func (o *Orchestrator) Retry(ctx context.Context, id uuid.UUID, strategy retry.Strategy) error {
	emailFailed, err := o.ledger.CountByStatus(ctx, model.ChannelEmail, id, model.RecipientStatusFailed)
	if err != nil {
		return fmt.Errorf("count failed email recipients: %w", err)
	}

	smsFailed, err := o.ledger.CountByStatus(ctx, model.ChannelSMS, id, model.RecipientStatusFailed)
	if err != nil {
		return fmt.Errorf("count failed sms recipients: %w", err)
	}

	if emailFailed == 0 && smsFailed == 0 {
		return ErrNoFailedRecipients
	}

	if emailFailed > 0 {
		if _, err := o.ledger.ResetFailed(ctx, model.ChannelEmail, id); err != nil {
			return fmt.Errorf("reset failed email recipients: %w", err)
		}
	}

	if smsFailed > 0 {
		if _, err := o.ledger.ResetFailed(ctx, model.ChannelSMS, id); err != nil {
			return fmt.Errorf("reset failed sms recipients: %w", err)
		}
	}

	if err := o.jobs.PrepareRetry(ctx, id, emailFailed > 0, smsFailed > 0); err != nil {
		return fmt.Errorf("prepare retry: %w", err)
	}

	zlog.Logger.Info().
		Str("job_id", id.String()).
		Int("email_failed", emailFailed).
		Int("sms_failed", smsFailed).
		Msg("retrying failed recipients")

	return o.Start(ctx, id, strategy)
}

// RequeueInFlight schedules a run for every job left in the processing status.
// Called once at startup so a crash never strands a job mid-run.
func (o *Orchestrator) RequeueInFlight(ctx context.Context, strategy retry.Strategy) error {
	ids, err := o.jobs.GetInFlightJobIDs(ctx)
	if err != nil {
		return fmt.Errorf("list in-flight jobs: %w", err)
	}

	for _, id := range ids {
		if err := o.Start(ctx, id, strategy); err != nil {
			zlog.Logger.Error().Err(err).Str("job_id", id.String()).Msg("failed to requeue in-flight job")
		}
	}

	if len(ids) > 0 {
		zlog.Logger.Info().Int("count", len(ids)).Msg("requeued in-flight jobs")
	}

	return nil
}

func (o *Orchestrator) fail(ctx context.Context, id uuid.UUID, cause error) {
	zlog.Logger.Error().Err(cause).Str("job_id", id.String()).Msg("job run failed")

	if err := o.jobs.MarkFailed(ctx, id, truncateError(cause)); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", id.String()).Msg("failed to mark job failed")
	}
}
