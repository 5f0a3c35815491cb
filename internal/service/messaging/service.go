package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/contact"
	"github.com/estatekit/messenger/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/messaging/mock.go -package=mocks

var (
	// ErrUnknownChannel is returned when a requested channel is not part of
	// the channel enumeration.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrSubjectRequired is returned when the email channel is enabled
	// without a subject line.
	ErrSubjectRequired = errors.New("subject is required for the email channel")
	// ErrNoRecipients is returned when no residence has a usable destination
	// for any enabled channel.
	ErrNoRecipients = errors.New("no recipients resolved for any enabled channel")
)

// Recipient pages match the legacy API page size.
const recipientsPageSize = 10

type jobRepository interface {
	CreateJob(ctx context.Context, job model.MessageJob) (uuid.UUID, error)
	SetTotals(ctx context.Context, id uuid.UUID, emailTotal, smsTotal int) error
	GetJobByID(ctx context.Context, id uuid.UUID) (model.MessageJob, error)
	GetAllJobs(ctx context.Context) ([]model.MessageJob, error)
}

type recipientRepository interface {
	BulkCreate(ctx context.Context, ch model.Channel, jobID uuid.UUID, recipients []model.Recipient) error
	CountByJobID(ctx context.Context, ch model.Channel, jobID uuid.UUID) (int, error)
	GetByJobID(ctx context.Context, ch model.Channel, jobID uuid.UUID, limit, offset int) ([]model.Recipient, error)
}

type residenceRepository interface {
	GetAllResidences(ctx context.Context) ([]model.Residence, error)
}

type jobEngine interface {
	Start(ctx context.Context, id uuid.UUID, strategy retry.Strategy) error
	Retry(ctx context.Context, id uuid.UUID, strategy retry.Strategy) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

type Service struct {
	jobs       jobRepository
	recipients recipientRepository
	residences residenceRepository
	engine     jobEngine
	cache      cache
}

func NewService(
	jobs jobRepository,
	recipients recipientRepository,
	residences residenceRepository,
	engine jobEngine,
	cache cache,
) *Service {
	return &Service{
		jobs:       jobs,
		recipients: recipients,
		residences: residences,
		engine:     engine,
		cache:      cache,
	}
}

// CreateJobInput carries everything needed to open a new messaging job.
// Empty Channels defaults to every known channel.
type CreateJobInput struct {
	Subject  string
	Body     string
	SMSBody  string
	Channels []model.Channel
}

// JobStatus is the poll payload for one job: stored counters plus computed
// progress. The legacy aggregate block mirrors the email channel.
type JobStatus struct {
	ID       uuid.UUID       `json:"id"`
	Status   string          `json:"status"`
	Channels []model.Channel `json:"channels"`

	EmailTotalRecipients int `json:"email_total_recipients"`
	EmailSentCount       int `json:"email_sent_count"`
	EmailFailedCount     int `json:"email_failed_count"`
	EmailProgressPercent int `json:"email_progress_percent"`

	SMSTotalRecipients int `json:"sms_total_recipients"`
	SMSSentCount       int `json:"sms_sent_count"`
	SMSFailedCount     int `json:"sms_failed_count"`
	SMSProgressPercent int `json:"sms_progress_percent"`

	OverallProgressPercent int `json:"overall_progress_percent"`

	TotalRecipients int `json:"total_recipients"`
	SentCount       int `json:"sent_count"`
	FailedCount     int `json:"failed_count"`
	ProgressPercent int `json:"progress_percent"`
}

func statusOf(j model.MessageJob) JobStatus {
	return JobStatus{
		ID:       j.ID,
		Status:   j.Status,
		Channels: j.Channels,

		EmailTotalRecipients: j.EmailTotalRecipients,
		EmailSentCount:       j.EmailSentCount,
		EmailFailedCount:     j.EmailFailedCount,
		EmailProgressPercent: j.EmailProgress(),

		SMSTotalRecipients: j.SMSTotalRecipients,
		SMSSentCount:       j.SMSSentCount,
		SMSFailedCount:     j.SMSFailedCount,
		SMSProgressPercent: j.SMSProgress(),

		OverallProgressPercent: j.OverallProgress(),

		TotalRecipients: j.TotalRecipients,
		SentCount:       j.SentCount,
		FailedCount:     j.FailedCount,
		ProgressPercent: model.Progress(j.SentCount, j.FailedCount, j.TotalRecipients),
	}
}

func (st JobStatus) terminal() bool {
	return st.Status == model.JobStatusCompleted || st.Status == model.JobStatusFailed
}

// RecipientPage is one page of a job's per-channel recipient snapshot.
type RecipientPage struct {
	Count   int               `json:"count"`
	Next    bool              `json:"next"`
	Page    int               `json:"page"`
	Results []model.Recipient `json:"results"`
}

func normalizeChannels(channels []model.Channel) ([]model.Channel, error) {
	if len(channels) == 0 {
		return model.Channels(), nil
	}

	seen := make(map[model.Channel]bool, len(channels))
	out := make([]model.Channel, 0, len(channels))
	for _, ch := range channels {
		if !model.KnownChannel(ch) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
		}
		if seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}

	return out, nil
}

// CreateJob validates the input, snapshots a recipient per residence for each
// enabled channel, persists the job with its totals and schedules the first
// run. The returned job carries the stored totals and timestamps.
func (s *Service) CreateJob(ctx context.Context, strategy retry.Strategy, input CreateJobInput) (model.MessageJob, error) {
	channels, err := normalizeChannels(input.Channels)
	if err != nil {
		return model.MessageJob{}, err
	}

	job := model.MessageJob{
		Subject:  input.Subject,
		Body:     input.Body,
		SMSBody:  input.SMSBody,
		Channels: channels,
		Status:   model.JobStatusPending,
	}

	if job.HasChannel(model.ChannelEmail) && strings.TrimSpace(job.Subject) == "" {
		return model.MessageJob{}, ErrSubjectRequired
	}

	residences, err := s.residences.GetAllResidences(ctx)
	if err != nil {
		return model.MessageJob{}, fmt.Errorf("list residences: %w", err)
	}

	var emailRecs, smsRecs []model.Recipient
	for _, r := range residences {
		if job.HasChannel(model.ChannelEmail) {
			if addr, ok := contact.BestEmail(r); ok {
				emailRecs = append(emailRecs, model.Recipient{ResidenceID: r.ID, Address: addr})
			}
		}
		if job.HasChannel(model.ChannelSMS) {
			if number, ok := contact.BestPhone(r); ok {
				smsRecs = append(smsRecs, model.Recipient{ResidenceID: r.ID, Address: number})
			}
		}
	}

	if len(emailRecs) == 0 && len(smsRecs) == 0 {
		return model.MessageJob{}, ErrNoRecipients
	}

	id, err := s.jobs.CreateJob(ctx, job)
	if err != nil {
		return model.MessageJob{}, fmt.Errorf("create job: %w", err)
	}

	if err := s.recipients.BulkCreate(ctx, model.ChannelEmail, id, emailRecs); err != nil {
		return model.MessageJob{}, fmt.Errorf("snapshot email recipients: %w", err)
	}
	if err := s.recipients.BulkCreate(ctx, model.ChannelSMS, id, smsRecs); err != nil {
		return model.MessageJob{}, fmt.Errorf("snapshot sms recipients: %w", err)
	}

	if err := s.jobs.SetTotals(ctx, id, len(emailRecs), len(smsRecs)); err != nil {
		return model.MessageJob{}, fmt.Errorf("set recipient totals: %w", err)
	}

	// Scheduling failures are not fatal: the job stays pending and Resume can
	// publish it again once the broker is back.
	if err := s.engine.Start(ctx, id, strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to schedule job run")
	}

	created, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		return model.MessageJob{}, fmt.Errorf("load created job: %w", err)
	}

	return created, nil
}

// Status returns the polling snapshot for one job. Terminal snapshots are
// served from and written back to the cache; in-flight jobs always hit the
// database so progress stays fresh.
func (s *Service) Status(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (JobStatus, error) {
	cached, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status from cache")
	}

	if err == nil {
		var st JobStatus
		if jsonErr := json.Unmarshal([]byte(cached), &st); jsonErr == nil && st.terminal() {
			return st, nil
		}
	}

	job, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		return JobStatus{}, fmt.Errorf("get job: %w", err)
	}

	st := statusOf(job)
	if job.Terminal() {
		s.cacheStatus(ctx, strategy, st)
	}

	return st, nil
}

func (s *Service) cacheStatus(ctx context.Context, strategy retry.Strategy, st JobStatus) {
	payload, err := json.Marshal(st)
	if err != nil {
		return
	}

	if err := s.cache.SetWithRetry(ctx, strategy, st.ID.String(), string(payload)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", st.ID.String()).Msg("failed to cache job status")
	}
}

// Recipients returns one page of the job's snapshot for a channel. Pages are
// 1-based; non-positive pages are treated as the first.
func (s *Service) Recipients(ctx context.Context, ch model.Channel, id uuid.UUID, page int) (RecipientPage, error) {
	if !model.KnownChannel(ch) {
		return RecipientPage{}, fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
	}
	if page < 1 {
		page = 1
	}

	if _, err := s.jobs.GetJobByID(ctx, id); err != nil {
		return RecipientPage{}, fmt.Errorf("get job: %w", err)
	}

	count, err := s.recipients.CountByJobID(ctx, ch, id)
	if err != nil {
		return RecipientPage{}, fmt.Errorf("count recipients: %w", err)
	}

	offset := (page - 1) * recipientsPageSize
	results, err := s.recipients.GetByJobID(ctx, ch, id, recipientsPageSize, offset)
	if err != nil {
		return RecipientPage{}, fmt.Errorf("list recipients: %w", err)
	}
	if results == nil {
		results = []model.Recipient{}
	}

	return RecipientPage{
		Count:   count,
		Next:    page*recipientsPageSize < count,
		Page:    page,
		Results: results,
	}, nil
}

// Retry resets the job's failed recipients and schedules another run, then
// returns the refreshed status snapshot. Jobs with no failed recipients are
// rejected with engine.ErrNoFailedRecipients.
func (s *Service) Retry(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (JobStatus, error) {
	if _, err := s.jobs.GetJobByID(ctx, id); err != nil {
		return JobStatus{}, fmt.Errorf("get job: %w", err)
	}

	if err := s.engine.Retry(ctx, id, strategy); err != nil {
		return JobStatus{}, fmt.Errorf("retry job: %w", err)
	}

	job, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		return JobStatus{}, fmt.Errorf("get job: %w", err)
	}

	// The job left its terminal state, so any cached snapshot is stale.
	st := statusOf(job)
	s.cacheStatus(ctx, strategy, st)

	return st, nil
}

// Resume re-publishes the job's run message. It only schedules: a completed
// job is skipped by the claim on the next run, and an in-flight one picks up
// from the recipient ledger.
func (s *Service) Resume(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	if _, err := s.jobs.GetJobByID(ctx, id); err != nil {
		return fmt.Errorf("get job: %w", err)
	}

	if err := s.engine.Start(ctx, id, strategy); err != nil {
		return fmt.Errorf("schedule job run: %w", err)
	}

	return nil
}

func (s *Service) Job(ctx context.Context, id uuid.UUID) (model.MessageJob, error) {
	job, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		return model.MessageJob{}, fmt.Errorf("get job: %w", err)
	}

	return job, nil
}

func (s *Service) Jobs(ctx context.Context) ([]model.MessageJob, error) {
	jobs, err := s.jobs.GetAllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all jobs: %w", err)
	}

	return jobs, nil
}
