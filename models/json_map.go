package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap jsonb kolonlarında saklanan serbest anahtar/değer yapısı.
type JSONMap map[string]interface{}

// Value GORM'un jsonb kolonuna yazabilmesi için serileştirir.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan jsonb kolonundan okunan değeri çözer.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("JSONMap: desteklenmeyen kaynak tipi")
	}
	return json.Unmarshal(raw, m)
}
