package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	OrgID           int         `json:"orgId" db:"org_id"`
	Description     string      `json:"description" db:"description"`
	Amount          float64     `json:"amount" db:"amount"`
	Category        *string     `json:"category,omitempty" db:"category"`
	Date            time.Time   `json:"date" db:"expense_date"`
	ReceiptImageURL *string     `json:"receiptImageURL,omitempty" db:"receipt_image_url"`
	Notes           *string     `json:"notes,omitempty" db:"notes"`
	CreatedBy       string      `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
	State           EntityState `json:"state" db:"state"`
}
