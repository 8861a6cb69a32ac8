package config

import "errors"

var (
	// ErrLoad indicates a configuration source could not be read.
	ErrLoad = errors.New("load config")
	// ErrParse indicates configuration contents could not be decoded.
	ErrParse = errors.New("parse config")
	// ErrEmptyAddr indicates the listen address is missing.
	ErrEmptyAddr = errors.New("addr must not be empty")
	// ErrBadQueueSize indicates a non-positive queue size.
	ErrBadQueueSize = errors.New("queue_size must be positive")
	// ErrBadWorkerCount indicates a non-positive worker count.
	ErrBadWorkerCount = errors.New("worker_count must be positive")
)
