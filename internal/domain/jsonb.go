package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap is a custom type for JSON object columns (recurrence_rule).
// It implements sql.Scanner and driver.Valuer to convert between Go's
// map[string]any and the database's JSON text representation.
type JSONMap map[string]any

// Scan implements the sql.Scanner interface.
func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*j = JSONMap{}
		return nil
	}

	return json.Unmarshal(data, j)
}

// Value implements the driver.Valuer interface.
func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// JSONStrings is a custom type for JSON array columns (landmarks).
type JSONStrings []string

// Scan implements the sql.Scanner interface.
func (j *JSONStrings) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*j = JSONStrings{}
		return nil
	}

	return json.Unmarshal(data, j)
}

// Value implements the driver.Valuer interface.
func (j JSONStrings) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

func jsonBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errors.New("unsupported type for JSON column")
	}
}
