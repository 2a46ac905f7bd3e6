package models

import (
	"database/sql/driver"
	"encoding/json"

	"invoicing-service/internal/utils"
)

// Doc stores an optional nested document in a JSONB column. A nil value maps
// to SQL NULL and JSON null.
type Doc[T any] struct {
	V *T
}

func NewDoc[T any](v *T) Doc[T] {
	return Doc[T]{V: v}
}

func (d Doc[T]) IsSet() bool {
	return d.V != nil
}

func (d Doc[T]) Value() (driver.Value, error) {
	if d.V == nil {
		return nil, nil
	}
	return json.Marshal(d.V)
}

func (d *Doc[T]) Scan(value any) error {
	if value == nil {
		d.V = nil
		return nil
	}
	d.V = new(T)
	return utils.JSONBScan(d.V, value)
}

func (d Doc[T]) MarshalJSON() ([]byte, error) {
	if d.V == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.V)
}

func (d *Doc[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.V = nil
		return nil
	}
	d.V = new(T)
	return json.Unmarshal(b, d.V)
}
