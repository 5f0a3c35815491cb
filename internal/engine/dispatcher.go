// Package engine runs message jobs: one orchestrator per process claims jobs
// and fans each one out to per-channel batch dispatchers.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/internal/model"
	"github.com/estatekit/messenger/internal/transport"
)

// Stored error texts are cut to the error_message column width.
const maxErrorLen = 500

// recipientLedger is the slice of the recipient repository the dispatcher drains.
type recipientLedger interface {
	GetPending(ctx context.Context, ch model.Channel, jobID uuid.UUID, limit int) ([]model.Recipient, error)
	MarkSent(ctx context.Context, ch model.Channel, ids []uuid.UUID) error
	MarkFailed(ctx context.Context, ch model.Channel, ids []uuid.UUID, errMsg string) error
}

// jobCounters is the slice of the job repository the dispatcher feeds.
type jobCounters interface {
	AddSent(ctx context.Context, id uuid.UUID, ch model.Channel, n int) error
	AddFailed(ctx context.Context, id uuid.UUID, ch model.Channel, n int) error
}

// Dispatcher drains one channel's pending recipients for a job in fixed
// batches, pausing between batches to stay under provider rate limits.
type Dispatcher struct {
	channel    model.Channel
	ledger     recipientLedger
	counters   jobCounters
	transport  transport.Transport
	batchSize  int
	batchDelay time.Duration

	// SMS destinations are grouped so each number is sent to once per run;
	// duplicate email addresses stay independent sends.
	groupDestinations bool

	sleep func(context.Context, time.Duration)
}

// NewDispatcher creates a dispatcher for one channel. Batch size and delay
// normally come from config.BatchFor.
func NewDispatcher(ch model.Channel, ledger recipientLedger, counters jobCounters, tr transport.Transport, batchSize int, batchDelay time.Duration) *Dispatcher {
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}

	return &Dispatcher{
		channel:           ch,
		ledger:            ledger,
		counters:          counters,
		transport:         tr,
		batchSize:         batchSize,
		batchDelay:        batchDelay,
		groupDestinations: ch == model.ChannelSMS,
		sleep:             sleepBetweenBatches,
	}
}

func sleepBetweenBatches(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// destination is one provider address together with every recipient row it
// covers. For email the mapping is one to one.
type destination struct {
	address string
	ids     []uuid.UUID
}

func (d *Dispatcher) destinations(recipients []model.Recipient) []destination {
	if !d.groupDestinations {
		out := make([]destination, 0, len(recipients))
		for _, rec := range recipients {
			out = append(out, destination{address: rec.Address, ids: []uuid.UUID{rec.ID}})
		}
		return out
	}

	index := make(map[string]int, len(recipients))
	var out []destination
	for _, rec := range recipients {
		if i, ok := index[rec.Address]; ok {
			out[i].ids = append(out[i].ids, rec.ID)
			continue
		}

		index[rec.Address] = len(out)
		out = append(out, destination{address: rec.Address, ids: []uuid.UUID{rec.ID}})
	}

	return out
}

func messageFor(job model.MessageJob, ch model.Channel) transport.Message {
	if ch == model.ChannelSMS {
		return transport.Message{Body: job.SMSText()}
	}

	return transport.Message{Subject: job.Subject, Body: job.Body}
}

// Run processes the channel's share of one job: it snapshots the pending
// ledger, groups destinations, and works through them batch by batch. Send
// failures become failed recipients and never stop the run; ledger, counter
// and transport configuration errors end the run early with recipients left
// pending, which keeps the job resumable.
func (d *Dispatcher) Run(ctx context.Context, job model.MessageJob) error {
	recipients, err := d.ledger.GetPending(ctx, d.channel, job.ID, 0)
	if err != nil {
		return fmt.Errorf("get pending recipients: %w", err)
	}

	dests := d.destinations(recipients)
	msg := messageFor(job, d.channel)

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("channel", string(d.channel)).
		Int("recipients", len(recipients)).
		Int("destinations", len(dests)).
		Msg("channel dispatch started")

	for start := 0; start < len(dests); start += d.batchSize {
		if start > 0 {
			d.sleep(ctx, d.batchDelay)
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		end := start + d.batchSize
		if end > len(dests) {
			end = len(dests)
		}

		if err := d.dispatchBatch(ctx, job.ID, dests[start:end], msg); err != nil {
			return err
		}
	}

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("channel", string(d.channel)).
		Msg("channel dispatch complete")

	return nil
}

func (d *Dispatcher) dispatchBatch(ctx context.Context, jobID uuid.UUID, batch []destination, msg transport.Message) error {
	addresses := make([]string, 0, len(batch))
	for _, dst := range batch {
		addresses = append(addresses, dst.address)
	}

	results, err := d.transport.SendBulk(ctx, addresses, msg)
	if err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	if len(results) != len(batch) {
		return fmt.Errorf("transport returned %d results for %d destinations", len(results), len(batch))
	}

	var sentIDs []uuid.UUID
	failedByErr := make(map[string][]uuid.UUID)
	var failedOrder []string
	for i, res := range results {
		if res.Sent() {
			sentIDs = append(sentIDs, batch[i].ids...)
			continue
		}

		zlog.Logger.Error().
			Err(res.Err).
			Str("job_id", jobID.String()).
			Str("channel", string(d.channel)).
			Str("to", res.To).
			Msg("failed to send message")

		errMsg := truncateError(res.Err)
		if _, ok := failedByErr[errMsg]; !ok {
			failedOrder = append(failedOrder, errMsg)
		}
		failedByErr[errMsg] = append(failedByErr[errMsg], batch[i].ids...)
	}

	if len(sentIDs) > 0 {
		if err := d.ledger.MarkSent(ctx, d.channel, sentIDs); err != nil {
			return fmt.Errorf("mark recipients sent: %w", err)
		}
		if err := d.counters.AddSent(ctx, jobID, d.channel, len(sentIDs)); err != nil {
			return fmt.Errorf("add sent count: %w", err)
		}
	}

	failedTotal := 0
	for _, errMsg := range failedOrder {
		ids := failedByErr[errMsg]
		if err := d.ledger.MarkFailed(ctx, d.channel, ids, errMsg); err != nil {
			return fmt.Errorf("mark recipients failed: %w", err)
		}
		failedTotal += len(ids)
	}
	if failedTotal > 0 {
		if err := d.counters.AddFailed(ctx, jobID, d.channel, failedTotal); err != nil {
			return fmt.Errorf("add failed count: %w", err)
		}
	}

	return nil
}

func truncateError(err error) string {
	s := err.Error()
	if len(s) > maxErrorLen {
		s = s[:maxErrorLen]
	}
	return s
}
