package simulate

import "errors"

var (
	// ErrTooFewTeams indicates the team pool cannot fill a match.
	ErrTooFewTeams = errors.New("too few teams")
	// ErrSubmit indicates a submission POST failed.
	ErrSubmit = errors.New("submit")
	// ErrFetch indicates a stats GET failed.
	ErrFetch = errors.New("fetch stats")
)
