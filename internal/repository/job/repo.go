package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/estatekit/messenger/internal/model"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrNoJobsFound      = errors.New("no jobs found")
	ErrAlreadyCompleted = errors.New("job already completed")
	ErrUnexpectedStatus = errors.New("job is not in a runnable status")
)

const jobColumns = `id, subject, body, sms_body, channels, status,
		email_total_recipients, email_sent_count, email_failed_count,
		sms_total_recipients, sms_sent_count, sms_failed_count,
		total_recipients, sent_count, failed_count,
		error_message, created_at, started_at, completed_at`

// Repository provides methods to interact with the message_jobs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new job repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (model.MessageJob, error) {
	var j model.MessageJob
	var channels pq.StringArray

	err := s.Scan(
		&j.ID, &j.Subject, &j.Body, &j.SMSBody, &channels, &j.Status,
		&j.EmailTotalRecipients, &j.EmailSentCount, &j.EmailFailedCount,
		&j.SMSTotalRecipients, &j.SMSSentCount, &j.SMSFailedCount,
		&j.TotalRecipients, &j.SentCount, &j.FailedCount,
		&j.ErrorMessage, &j.CreatedAt, &j.StartedAt, &j.CompletedAt,
	)
	if err != nil {
		return model.MessageJob{}, err
	}

	j.Channels = make([]model.Channel, 0, len(channels))
	for _, c := range channels {
		j.Channels = append(j.Channels, model.Channel(c))
	}

	return j, nil
}

func channelStrings(channels []model.Channel) []string {
	out := make([]string, 0, len(channels))
	for _, c := range channels {
		out = append(out, string(c))
	}
	return out
}

// CreateJob inserts a new message job and returns its ID. The job starts in
// the pending status with zeroed counters.
func (r *Repository) CreateJob(ctx context.Context, job model.MessageJob) (uuid.UUID, error) {
	query := `
		INSERT INTO message_jobs (
		    subject, body, sms_body, channels
		) VALUES ($1, $2, $3, $4)
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query, job.Subject, job.Body, job.SMSBody, pq.Array(channelStrings(job.Channels)),
	).Scan(&job.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job.ID, nil
}

// SetTotals records the snapshot sizes taken at creation time. The legacy
// total mirrors the email total.
func (r *Repository) SetTotals(ctx context.Context, id uuid.UUID, emailTotal, smsTotal int) error {
	query := `
		UPDATE message_jobs
		SET email_total_recipients = $1,
		    sms_total_recipients = $2,
		    total_recipients = $1
		WHERE id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, emailTotal, smsTotal, id)
	if err != nil {
		return fmt.Errorf("failed to set job totals: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// GetJobByID retrieves a single job by its ID.
func (r *Repository) GetJobByID(ctx context.Context, id uuid.UUID) (model.MessageJob, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM message_jobs
		WHERE id = $1;
    `, jobColumns)

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MessageJob{}, ErrJobNotFound
		}

		return model.MessageJob{}, fmt.Errorf("failed to get job: %w", err)
	}

	return j, nil
}

// GetAllJobs retrieves all jobs ordered by creation time descending.
func (r *Repository) GetAllJobs(ctx context.Context) ([]model.MessageJob, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM message_jobs
		ORDER BY created_at DESC;
    `, jobColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.MessageJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, j)
	}

	if len(jobs) == 0 {
		return nil, ErrNoJobsFound
	}

	return jobs, nil
}

// ClaimForRun locks the job row and moves it into the processing status,
// keeping the original started_at when the job has run before. A completed
// job yields ErrAlreadyCompleted so re-delivered runs become no-ops; a status
// outside the lifecycle yields ErrUnexpectedStatus.
func (r *Repository) ClaimForRun(ctx context.Context, id uuid.UUID) (model.MessageJob, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return model.MessageJob{}, fmt.Errorf("failed to begin claim: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
		SELECT %s
		FROM message_jobs
		WHERE id = $1
		FOR UPDATE;
    `, jobColumns)

	j, err := scanJob(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MessageJob{}, ErrJobNotFound
		}

		return model.MessageJob{}, fmt.Errorf("failed to lock job: %w", err)
	}

	switch j.Status {
	case model.JobStatusPending, model.JobStatusProcessing, model.JobStatusFailed:
	case model.JobStatusCompleted:
		return model.MessageJob{}, ErrAlreadyCompleted
	default:
		return model.MessageJob{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, j.Status)
	}

	claim := `
		UPDATE message_jobs
		SET status = $1, started_at = COALESCE(started_at, now())
		WHERE id = $2
		RETURNING started_at;
    `

	if err := tx.QueryRowContext(ctx, claim, model.JobStatusProcessing, id).Scan(&j.StartedAt); err != nil {
		return model.MessageJob{}, fmt.Errorf("failed to claim job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.MessageJob{}, fmt.Errorf("failed to commit claim: %w", err)
	}

	j.Status = model.JobStatusProcessing

	return j, nil
}

// AddSent adds n delivered recipients to the channel's sent counter. Email
// increments also feed the legacy mirror counters.
func (r *Repository) AddSent(ctx context.Context, id uuid.UUID, ch model.Channel, n int) error {
	var query string
	switch ch {
	case model.ChannelEmail:
		query = `
		UPDATE message_jobs
		SET email_sent_count = email_sent_count + $1,
		    sent_count = sent_count + $1
		WHERE id = $2;
    `
	case model.ChannelSMS:
		query = `
		UPDATE message_jobs
		SET sms_sent_count = sms_sent_count + $1
		WHERE id = $2;
    `
	default:
		return fmt.Errorf("unknown channel %q", ch)
	}

	res, err := r.db.ExecContext(ctx, query, n, id)
	if err != nil {
		return fmt.Errorf("failed to add sent count: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// AddFailed adds n failed recipients to the channel's failed counter. Email
// increments also feed the legacy mirror counters.
func (r *Repository) AddFailed(ctx context.Context, id uuid.UUID, ch model.Channel, n int) error {
	var query string
	switch ch {
	case model.ChannelEmail:
		query = `
		UPDATE message_jobs
		SET email_failed_count = email_failed_count + $1,
		    failed_count = failed_count + $1
		WHERE id = $2;
    `
	case model.ChannelSMS:
		query = `
		UPDATE message_jobs
		SET sms_failed_count = sms_failed_count + $1
		WHERE id = $2;
    `
	default:
		return fmt.Errorf("unknown channel %q", ch)
	}

	res, err := r.db.ExecContext(ctx, query, n, id)
	if err != nil {
		return fmt.Errorf("failed to add failed count: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// Finalize moves the job into the completed status, but only when neither
// channel still has pending recipients. It reports whether the job was
// completed by this call, so concurrent runs finalize exactly once.
func (r *Repository) Finalize(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE message_jobs
		SET status = $1, completed_at = now()
		WHERE id = $2
		  AND status <> $1
		  AND NOT EXISTS (
		    SELECT 1 FROM message_email_recipients WHERE job_id = $2 AND status = $3
		  )
		  AND NOT EXISTS (
		    SELECT 1 FROM message_sms_recipients WHERE job_id = $2 AND status = $3
		  );
    `

	res, err := r.db.ExecContext(ctx, query, model.JobStatusCompleted, id, model.RecipientStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to finalize job: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows > 0, nil
}

// MarkFailed moves the job into the failed status and records the error text.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	query := `
		UPDATE message_jobs
		SET status = $1, error_message = $2, completed_at = now()
		WHERE id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, model.JobStatusFailed, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// PrepareRetry moves the job back into the processing status and zeroes the
// failed counters of the channels being retried. The recipient rows are reset
// separately by the recipient repository.
func (r *Repository) PrepareRetry(ctx context.Context, id uuid.UUID, resetEmail, resetSMS bool) error {
	query := `
		UPDATE message_jobs
		SET status = $1,
		    error_message = '',
		    completed_at = NULL,
		    email_failed_count = CASE WHEN $2 THEN 0 ELSE email_failed_count END,
		    failed_count = CASE WHEN $2 THEN 0 ELSE failed_count END,
		    sms_failed_count = CASE WHEN $3 THEN 0 ELSE sms_failed_count END
		WHERE id = $4;
    `

	res, err := r.db.ExecContext(ctx, query, model.JobStatusProcessing, resetEmail, resetSMS, id)
	if err != nil {
		return fmt.Errorf("failed to prepare retry: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// GetInFlightJobIDs returns the IDs of jobs stuck in the processing status,
// used at startup to requeue runs interrupted by a crash.
func (r *Repository) GetInFlightJobIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM message_jobs
		WHERE status = $1
		ORDER BY created_at;
    `

	rows, err := r.db.QueryContext(ctx, query, model.JobStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("failed to get in-flight jobs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}
