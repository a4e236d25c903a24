package repository

import "errors"

// Sentinel kinds for history-store errors.
var (
	ErrNotFound     = errors.New("history not found")
	ErrInvalidLimit = errors.New("invalid history limit")
	ErrEmptyID      = errors.New("scout and player ids must not be empty")
)
