package models

import (
	"database/sql/driver"

	"invoicing-service/internal/utils"
)

// Price is a monetary amount together with its VAT treatment. A net price
// excludes VAT, a gross price includes it. With no VATPercent set, gross and
// net are the same amount.
type Price struct {
	Amount     float64    `json:"amount"`
	VATMode    VATMode    `json:"vatMode"`
	VATPercent *float64   `json:"vatPercent,omitempty"`
	Unit       *PriceUnit `json:"unit,omitempty"`
}

// ToGross returns the VAT-inclusive amount.
func (p Price) ToGross() float64 {
	if p.VATPercent == nil {
		return p.Amount
	}
	if p.VATMode == VATNet {
		return p.Amount * (1 + *p.VATPercent/100)
	}
	return p.Amount
}

// ToNet returns the VAT-exclusive amount.
func (p Price) ToNet() float64 {
	if p.VATPercent == nil {
		return p.Amount
	}
	if p.VATMode == VATGross {
		return p.Amount / (1 + *p.VATPercent/100)
	}
	return p.Amount
}

func (p Price) Value() (driver.Value, error) { return utils.JSONBValue(p) }
func (p *Price) Scan(value any) error        { return utils.JSONBScan(p, value) }
