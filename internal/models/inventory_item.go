package models

import (
	"database/sql/driver"
	"time"

	"invoicing-service/internal/utils"

	"github.com/google/uuid"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) { return utils.JSONBValue(l) }
func (l *StringList) Scan(value any) error        { return utils.JSONBScan(l, value) }

type InventoryItem struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	OrgID              int           `json:"orgId" db:"org_id"`
	Name               string        `json:"name" db:"name"`
	ShortName          *string       `json:"shortName,omitempty" db:"short_name"`
	Description        *string       `json:"description,omitempty" db:"description"`
	Type               ItemType      `json:"type" db:"item_type"`
	Price              Price         `json:"price" db:"price"`
	AllowAmountDecimal bool          `json:"allowAmountDecimal" db:"allow_amount_decimal"`
	ImageURLs          StringList    `json:"imageURLs,omitempty" db:"image_urls"`
	PrimaryImage       *int          `json:"primaryImage,omitempty" db:"primary_image"`
	Tags               StringList    `json:"tags,omitempty" db:"tags"`
	InStockStatus      bool          `json:"inStockStatus" db:"in_stock_status"`
	Properties         utils.JSONMap `json:"properties,omitempty" db:"properties"`
	CreatedBy          string        `json:"createdBy" db:"created_by"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" db:"updated_at"`
	State              EntityState   `json:"state" db:"state"`
}
