package dto

// PhoneNumberRequest is one phone entry on a residence payload.
type PhoneNumberRequest struct {
	Number    string `json:"number" validate:"required"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"is_primary"`
}

// EmailAddressRequest is one email entry on a residence payload.
type EmailAddressRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"is_primary"`
}

// SaveResidenceRequest is the body for creating or replacing a residence.
// Contact lists are replaced wholesale on update.
type SaveResidenceRequest struct {
	HouseNumber string                `json:"house_number" validate:"required"`
	Name        string                `json:"name"`
	Phones      []PhoneNumberRequest  `json:"phone_numbers" validate:"dive"`
	Emails      []EmailAddressRequest `json:"email_addresses" validate:"dive"`
}
