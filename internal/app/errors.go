package service

import "errors"

var (
	// ErrNotFound indicates the requested data does not exist yet.
	ErrNotFound = errors.New("not found")
	// ErrNoResultsProvider indicates validation was requested without an
	// official results source configured.
	ErrNoResultsProvider = errors.New("no results provider configured")
)
