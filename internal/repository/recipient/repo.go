package recipient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/estatekit/messenger/internal/model"
)

var ErrUnknownChannel = errors.New("unknown recipient channel")

// Per-channel ledger tables. Both tables share one shape, so every query is
// built against this fixed map and never against caller input.
var tables = map[model.Channel]string{
	model.ChannelEmail: "message_email_recipients",
	model.ChannelSMS:   "message_sms_recipients",
}

const recipientColumns = `id, job_id, residence_id, address, status, error_message, sent_at`

// Repository provides methods to interact with the per-channel recipient tables.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new recipient repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

func tableFor(ch model.Channel) (string, error) {
	table, ok := tables[ch]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	return table, nil
}

// BulkCreate snapshots the resolved destinations for one job and channel in a
// single multi-row insert. Rows start in the pending status.
func (r *Repository) BulkCreate(ctx context.Context, ch model.Channel, jobID uuid.UUID, recipients []model.Recipient) error {
	table, err := tableFor(ch)
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(recipients))
	args := make([]interface{}, 0, len(recipients)*3)
	for i, rec := range recipients {
		n := i * 3
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d)", n+1, n+2, n+3))
		args = append(args, jobID, rec.ResidenceID, rec.Address)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (job_id, residence_id, address)
		VALUES %s;
    `, table, strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create %s recipients: %w", ch, err)
	}

	return nil
}

// GetPending returns the pending recipients of one job and channel in stable
// order. A limit above zero caps the result; zero or below returns the whole
// pending set.
func (r *Repository) GetPending(ctx context.Context, ch model.Channel, jobID uuid.UUID, limit int) ([]model.Recipient, error) {
	table, err := tableFor(ch)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE job_id = $1 AND status = $2
		ORDER BY id`, recipientColumns, table)

	args := []interface{}{jobID, model.RecipientStatusPending}
	if limit > 0 {
		query += `
		LIMIT $3`
		args = append(args, limit)
	}
	query += `;
    `

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending %s recipients: %w", ch, err)
	}
	defer rows.Close()

	var recipients []model.Recipient
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.JobID, &rec.ResidenceID, &rec.Address, &rec.Status, &rec.ErrorMessage, &rec.SentAt); err != nil {
			return nil, err
		}

		recipients = append(recipients, rec)
	}

	return recipients, nil
}

// MarkSent marks the given recipients delivered and stamps sent_at. Any error
// text left over from an earlier attempt is cleared.
func (r *Repository) MarkSent(ctx context.Context, ch model.Channel, ids []uuid.UUID) error {
	table, err := tableFor(ch)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, sent_at = now(), error_message = ''
		WHERE id = ANY($2);
    `, table)

	if _, err := r.db.ExecContext(ctx, query, model.RecipientStatusSent, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to mark %s recipients sent: %w", ch, err)
	}

	return nil
}

// MarkFailed marks the given recipients failed with a shared error text.
// Callers group recipients by failure before marking.
func (r *Repository) MarkFailed(ctx context.Context, ch model.Channel, ids []uuid.UUID, errMsg string) error {
	table, err := tableFor(ch)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, error_message = $2
		WHERE id = ANY($3);
    `, table)

	if _, err := r.db.ExecContext(ctx, query, model.RecipientStatusFailed, errMsg, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to mark %s recipients failed: %w", ch, err)
	}

	return nil
}

// ResetFailed returns the channel's failed recipients to the pending status so
// a retry run picks them up again. It reports how many rows were reset.
func (r *Repository) ResetFailed(ctx context.Context, ch model.Channel, jobID uuid.UUID) (int64, error) {
	table, err := tableFor(ch)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, error_message = '', sent_at = NULL
		WHERE job_id = $2 AND status = $3;
    `, table)

	res, err := r.db.ExecContext(ctx, query, model.RecipientStatusPending, jobID, model.RecipientStatusFailed)
	if err != nil {
		return 0, fmt.Errorf("failed to reset failed %s recipients: %w", ch, err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

// CountByStatus counts one job's recipients in the given status for one channel.
func (r *Repository) CountByStatus(ctx context.Context, ch model.Channel, jobID uuid.UUID, status string) (int, error) {
	table, err := tableFor(ch)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE job_id = $1 AND status = $2;
    `, table)

	var count int
	if err := r.db.QueryRowContext(ctx, query, jobID, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s recipients: %w", ch, err)
	}

	return count, nil
}

// CountByJobID counts all of one job's recipients for one channel.
func (r *Repository) CountByJobID(ctx context.Context, ch model.Channel, jobID uuid.UUID) (int, error) {
	table, err := tableFor(ch)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE job_id = $1;
    `, table)

	var count int
	if err := r.db.QueryRowContext(ctx, query, jobID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s recipients: %w", ch, err)
	}

	return count, nil
}

// GetByJobID returns one page of a job's recipients for one channel.
func (r *Repository) GetByJobID(ctx context.Context, ch model.Channel, jobID uuid.UUID, limit, offset int) ([]model.Recipient, error) {
	table, err := tableFor(ch)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE job_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3;
    `, recipientColumns, table)

	rows, err := r.db.QueryContext(ctx, query, jobID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s recipients: %w", ch, err)
	}
	defer rows.Close()

	var recipients []model.Recipient
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.JobID, &rec.ResidenceID, &rec.Address, &rec.Status, &rec.ErrorMessage, &rec.SentAt); err != nil {
			return nil, err
		}

		recipients = append(recipients, rec)
	}

	return recipients, nil
}
