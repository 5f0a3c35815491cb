package model

import (
	"time"

	"github.com/google/uuid"
)

// Residence is a contact record: a household with zero or more labeled phone
// numbers and email addresses. Jobs reference residences but never own them.
type Residence struct {
	ID          uuid.UUID      `json:"id"`
	HouseNumber string         `json:"house_number"`
	Name        string         `json:"name"` // e.g. "Mr. & Mrs. Mensah"
	Phones      []PhoneNumber  `json:"phone_numbers"`
	Emails      []EmailAddress `json:"email_addresses"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PhoneNumber is a phone contact attached to a residence.
type PhoneNumber struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Label     string    `json:"label"` // e.g. Home, Mobile, Work
	IsPrimary bool      `json:"is_primary"`
}

// EmailAddress is an email contact attached to a residence.
type EmailAddress struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Label     string    `json:"label"` // e.g. Personal, Work
	IsPrimary bool      `json:"is_primary"`
}
