package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Canton     string `json:"canton"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// IsEmpty reports whether every subfield is an empty string.
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.City == "" && a.Canton == "" &&
		a.PostalCode == "" && a.Country == ""
}

// NormalizeAddress clears an address whose subfields are all empty strings,
// so an all-blank form submission is stored as "no address" instead of a
// record of empty strings. A partially filled address is preserved as-is.
func NormalizeAddress(a *Address) *Address {
	if a == nil || a.IsEmpty() {
		return nil
	}
	return a
}

// ContactAddress is an address plus the contact fields invoices carry on
// their billing and shipping blocks.
type ContactAddress struct {
	Address
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Customer struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	OrgID       int          `json:"orgId" db:"org_id"`
	Title       *string      `json:"title,omitempty" db:"title"`
	Name        string       `json:"name" db:"name"`
	SurName     string       `json:"surName" db:"sur_name"`
	Email       string       `json:"email" db:"email"`
	Phone       *string      `json:"phone,omitempty" db:"phone"`
	Address     Doc[Address] `json:"address" db:"address"`
	DateOfBirth *time.Time   `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
	State       EntityState  `json:"state" db:"state"`
}

// DisplayName is the customer's name as shown on invoices and in the ledger.
func (c Customer) DisplayName() string {
	if c.SurName == "" {
		return c.Name
	}
	return c.Name + " " + c.SurName
}
