package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DataType is the declared type of a setting value.
type DataType string

const (
	TypeString   DataType = "STRING"
	TypeInt      DataType = "INT"
	TypeBoolean  DataType = "BOOLEAN"
	TypePassword DataType = "PASSWORD"
	TypeJSON     DataType = "JSON"
)

// Validate reports whether value is acceptable for t. The empty string
// clears a setting and is accepted for every type.
func (t DataType) Validate(value string) error {
	if value == "" {
		return nil
	}
	switch t {
	case TypeString, TypePassword:
		return nil
	case TypeInt:
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidSettingValue, value)
		}
		return nil
	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "false":
			return nil
		}
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidSettingValue, value)
	case TypeJSON:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: value is not valid JSON", ErrInvalidSettingValue)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown data type %q", ErrInvalidSettingValue, string(t))
	}
}

// Setting is one stored record.
type Setting struct {
	Name     string
	Value    string
	Null     bool
	DataType DataType
	Position int
	Internal bool
}

// Definition declares a setting and its initial value.
type Definition struct {
	Name     string
	Value    string
	DataType DataType
	Position int
	// Internal settings are not exposed to unauthenticated clients.
	Internal bool
}
