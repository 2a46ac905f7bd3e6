package models

import (
	"time"

	"github.com/google/uuid"
)

type LedgerSourceType string

const (
	LedgerSourceExpense LedgerSourceType = "expense"
	LedgerSourceInvoice LedgerSourceType = "invoice"
)

// LedgerEntry is one row of the bookkeeping view: either a recorded expense
// (outflow) or a paid invoice (inflow).
type LedgerEntry struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Type        LedgerEntryType  `json:"type"`
	Amount      float64          `json:"amount"`
	Category    *string          `json:"category,omitempty"`
	SourceID    uuid.UUID        `json:"sourceId"`
	SourceType  LedgerSourceType `json:"sourceType"`
}

type LedgerSummary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetAmount     float64 `json:"netAmount"`
}
