package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidRecord = errors.New("record must have a match key and team number")
)
