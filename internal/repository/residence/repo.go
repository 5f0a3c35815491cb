package residence

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

var ErrResidenceNotFound = errors.New("residence not found")

// Repository provides methods to interact with the residences tables.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new residence repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateResidence inserts a residence together with its nested phone numbers
// and email addresses and returns the residence ID.
func (r *Repository) CreateResidence(ctx context.Context, res model.Residence) (uuid.UUID, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin create: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO residences (house_number, name)
		VALUES ($1, $2)
		RETURNING id;
    `

	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, query, res.HouseNumber, res.Name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create residence: %w", err)
	}

	if err := insertContacts(ctx, tx, id, res.Phones, res.Emails); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit create: %w", err)
	}

	return id, nil
}

func insertContacts(ctx context.Context, tx *sql.Tx, id uuid.UUID, phones []model.PhoneNumber, emails []model.EmailAddress) error {
	phoneQuery := `
		INSERT INTO residence_phone_numbers (residence_id, number, label, is_primary)
		VALUES ($1, $2, $3, $4);
    `

	for _, p := range phones {
		if _, err := tx.ExecContext(ctx, phoneQuery, id, p.Number, p.Label, p.IsPrimary); err != nil {
			return fmt.Errorf("failed to create phone number: %w", err)
		}
	}

	emailQuery := `
		INSERT INTO residence_email_addresses (residence_id, email, label, is_primary)
		VALUES ($1, $2, $3, $4);
    `

	for _, e := range emails {
		if _, err := tx.ExecContext(ctx, emailQuery, id, e.Email, e.Label, e.IsPrimary); err != nil {
			return fmt.Errorf("failed to create email address: %w", err)
		}
	}

	return nil
}

// GetResidenceByID retrieves one residence with its contacts.
func (r *Repository) GetResidenceByID(ctx context.Context, id uuid.UUID) (model.Residence, error) {
	query := `
		SELECT id, house_number, name, created_at, updated_at
		FROM residences
		WHERE id = $1;
    `

	var res model.Residence
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&res.ID, &res.HouseNumber, &res.Name, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Residence{}, ErrResidenceNotFound
		}

		return model.Residence{}, fmt.Errorf("failed to get residence: %w", err)
	}

	residences := []model.Residence{res}
	if err := r.attachContacts(ctx, residences); err != nil {
		return model.Residence{}, err
	}

	return residences[0], nil
}

// GetAllResidences retrieves every residence with contacts, ordered by house number.
func (r *Repository) GetAllResidences(ctx context.Context) ([]model.Residence, error) {
	query := `
		SELECT id, house_number, name, created_at, updated_at
		FROM residences
		ORDER BY house_number;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all residences: %w", err)
	}

	residences, err := collectResidences(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachContacts(ctx, residences); err != nil {
		return nil, err
	}

	return residences, nil
}

func collectResidences(rows *sql.Rows) ([]model.Residence, error) {
	defer rows.Close()

	var residences []model.Residence
	for rows.Next() {
		var res model.Residence
		if err := rows.Scan(&res.ID, &res.HouseNumber, &res.Name, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}

		residences = append(residences, res)
	}

	return residences, rows.Err()
}

// attachContacts loads phone numbers and email addresses for every residence
// in the slice, in stable insertion order.
func (r *Repository) attachContacts(ctx context.Context, residences []model.Residence) error {
	if len(residences) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(residences))
	index := make(map[uuid.UUID]int, len(residences))
	for i, res := range residences {
		ids = append(ids, res.ID)
		index[res.ID] = i
	}

	phoneQuery := `
		SELECT residence_id, id, number, label, is_primary
		FROM residence_phone_numbers
		WHERE residence_id = ANY($1)
		ORDER BY created_at, id;
    `

	rows, err := r.db.QueryContext(ctx, phoneQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get phone numbers: %w", err)
	}

	err = func() error {
		defer rows.Close()
		for rows.Next() {
			var resID uuid.UUID
			var p model.PhoneNumber
			if err := rows.Scan(&resID, &p.ID, &p.Number, &p.Label, &p.IsPrimary); err != nil {
				return err
			}

			if i, ok := index[resID]; ok {
				residences[i].Phones = append(residences[i].Phones, p)
			}
		}
		return rows.Err()
	}()
	if err != nil {
		return err
	}

	emailQuery := `
		SELECT residence_id, id, email, label, is_primary
		FROM residence_email_addresses
		WHERE residence_id = ANY($1)
		ORDER BY created_at, id;
    `

	rows, err = r.db.QueryContext(ctx, emailQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get email addresses: %w", err)
	}

	defer rows.Close()
	for rows.Next() {
		var resID uuid.UUID
		var e model.EmailAddress
		if err := rows.Scan(&resID, &e.ID, &e.Email, &e.Label, &e.IsPrimary); err != nil {
			return err
		}

		if i, ok := index[resID]; ok {
			residences[i].Emails = append(residences[i].Emails, e)
		}
	}

	return rows.Err()
}

// UpdateResidence replaces a residence's fields and contact lists.
func (r *Repository) UpdateResidence(ctx context.Context, res model.Residence) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE residences
		SET house_number = $1, name = $2, updated_at = now()
		WHERE id = $3;
    `

	result, err := tx.ExecContext(ctx, query, res.HouseNumber, res.Name, res.ID)
	if err != nil {
		return fmt.Errorf("failed to update residence: %w", err)
	}

	rows, _ := result.RowsAffected()

	if rows == 0 {
		return ErrResidenceNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM residence_phone_numbers WHERE residence_id = $1;`, res.ID); err != nil {
		return fmt.Errorf("failed to clear phone numbers: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM residence_email_addresses WHERE residence_id = $1;`, res.ID); err != nil {
		return fmt.Errorf("failed to clear email addresses: %w", err)
	}

	if err := insertContacts(ctx, tx, res.ID, res.Phones, res.Emails); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	return nil
}

// DeleteResidence removes a residence; contacts go with it via cascade.
func (r *Repository) DeleteResidence(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM residences
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete residence: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrResidenceNotFound
	}

	return nil
}
