package settings

import "errors"

var (
	// ErrUnknownSettingKey is returned when a key has no stored record.
	ErrUnknownSettingKey = errors.New("unknown setting key")
	// ErrInvalidSettingValue is returned when a value does not match the
	// declared data type.
	ErrInvalidSettingValue = errors.New("invalid setting value")
)
