package models

import (
	"errors"
	"strings"
	"time"
)

func validateAddress(a *Address) error {
	if a == nil {
		return nil
	}
	if a.PostalCode != "" && len(a.PostalCode) < 4 {
		return errors.New("postalCode must be at least 4 characters or empty")
	}
	return nil
}

// ============================================================================
// CUSTOMERS
// ============================================================================

type CreateCustomerRequest struct {
	Title       *string    `json:"title,omitempty"`
	Name        string     `json:"name" validate:"required"`
	SurName     string     `json:"surName" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *Address   `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

func (r CreateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.SurName) == "" {
		return errors.New("surName is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return validateAddress(r.Address)
}

type UpdateCustomerRequest struct {
	Title       *string      `json:"title,omitempty"`
	Name        *string      `json:"name,omitempty"`
	SurName     *string      `json:"surName,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Address     *Address     `json:"address,omitempty"`
	DateOfBirth *time.Time   `json:"dateOfBirth,omitempty"`
	State       *EntityState `json:"state,omitempty"`
}

func (r UpdateCustomerRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.SurName != nil && strings.TrimSpace(*r.SurName) == "" {
		return errors.New("surName cannot be empty")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return errors.New("email cannot be empty")
	}
	return validateAddress(r.Address)
}

// ============================================================================
// INVENTORY ITEMS
// ============================================================================

type CreateInventoryItemRequest struct {
	Name               string         `json:"name" validate:"required"`
	ShortName          *string        `json:"shortName,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Type               ItemType       `json:"type" validate:"required"`
	Price              Price          `json:"price" validate:"required"`
	AllowAmountDecimal *bool          `json:"allowAmountDecimal,omitempty"`
	ImageURLs          []string       `json:"imageURLs,omitempty"`
	PrimaryImage       *int           `json:"primaryImage,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	InStockStatus      *bool          `json:"inStockStatus,omitempty"`
	Properties         map[string]any `json:"properties,omitempty"`
}

func (r CreateInventoryItemRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if !IsValidItemType(r.Type) {
		return errors.New("type must be product or service")
	}
	if err := validatePrice(r.Price); err != nil {
		return err
	}
	return nil
}

type UpdateInventoryItemRequest struct {
	Name               *string        `json:"name,omitempty"`
	ShortName          *string        `json:"shortName,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Type               *ItemType      `json:"type,omitempty"`
	Price              *Price         `json:"price,omitempty"`
	AllowAmountDecimal *bool          `json:"allowAmountDecimal,omitempty"`
	ImageURLs          []string       `json:"imageURLs,omitempty"`
	PrimaryImage       *int           `json:"primaryImage,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	InStockStatus      *bool          `json:"inStockStatus,omitempty"`
	Properties         map[string]any `json:"properties,omitempty"`
	State              *EntityState   `json:"state,omitempty"`
}

func (r UpdateInventoryItemRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Type != nil && !IsValidItemType(*r.Type) {
		return errors.New("type must be product or service")
	}
	if r.Price != nil {
		if err := validatePrice(*r.Price); err != nil {
			return err
		}
	}
	return nil
}

func validatePrice(p Price) error {
	if p.Amount < 0 {
		return errors.New("price amount cannot be negative")
	}
	if p.VATMode != VATGross && p.VATMode != VATNet {
		return errors.New("price vatMode must be gross or net")
	}
	if p.VATPercent != nil && *p.VATPercent < 0 {
		return errors.New("vatPercent cannot be negative")
	}
	if p.Unit != nil && !IsValidPriceUnit(*p.Unit) {
		return errors.New("unknown price unit")
	}
	return nil
}

// ============================================================================
// EXPENSES
// ============================================================================

type CreateExpenseRequest struct {
	Description     string    `json:"description" validate:"required"`
	Amount          float64   `json:"amount" validate:"required,gt=0"`
	Category        *string   `json:"category,omitempty"`
	Date            time.Time `json:"date" validate:"required"`
	ReceiptImageURL *string   `json:"receiptImageURL,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

func (r CreateExpenseRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

type UpdateExpenseRequest struct {
	Description     *string      `json:"description,omitempty"`
	Amount          *float64     `json:"amount,omitempty"`
	Category        *string      `json:"category,omitempty"`
	Date            *time.Time   `json:"date,omitempty"`
	ReceiptImageURL *string      `json:"receiptImageURL,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
	State           *EntityState `json:"state,omitempty"`
}

func (r UpdateExpenseRequest) Validate() error {
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	return nil
}
