package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil // Store NULL if the map is nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("JSONMap: Scan failed, expected []byte but got %T", value)
	}

	return json.Unmarshal(b, j)
}

// JSONBValue marshals any document field for storage in a JSONB column.
func JSONBValue(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// JSONBScan unmarshals a JSONB column into dst. NULL columns leave dst untouched.
func JSONBScan(dst any, value any) error {
	if value == nil {
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("JSONB: Scan failed, expected []byte but got %T", value)
	}

	return json.Unmarshal(b, dst)
}
