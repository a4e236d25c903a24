package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidConfig marks a config that parsed but failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps provider/parser failures during Load.
	ErrLoadConfig = errors.New("load config failed")
)
