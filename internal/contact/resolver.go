// Package contact picks the best destination out of a residence's contact
// records. A primary-flagged entry always wins; otherwise the first available
// entry is used. Residences without a usable destination for a channel are
// simply skipped by callers.
package contact

import "github.com/estatekit/messenger/internal/model"

// BestEmail returns the email address to message a residence at.
// The second return value is false when the residence has no email at all.
func BestEmail(r model.Residence) (string, bool) {
	for _, e := range r.Emails {
		if e.IsPrimary {
			return e.Email, true
		}
	}
	if len(r.Emails) > 0 {
		return r.Emails[0].Email, true
	}
	return "", false
}

// BestPhone returns the phone number to message a residence at.
// The second return value is false when the residence has no phone at all.
func BestPhone(r model.Residence) (string, bool) {
	for _, p := range r.Phones {
		if p.IsPrimary {
			return p.Number, true
		}
	}
	if len(r.Phones) > 0 {
		return r.Phones[0].Number, true
	}
	return "", false
}
