package tracker

import "errors"

// Sentinel kinds for tracker misuse. All of these are recoverable: the UI
// surfaces them and the tracker state is unchanged.
var (
	ErrBrokenDown     = errors.New("robot marked broken down; resolve it first")
	ErrBusy           = errors.New("another capture is already in progress")
	ErrNoSelection    = errors.New("no target selection in progress")
	ErrNoPending      = errors.New("no pending action")
	ErrNotConfirmable = errors.New("pending action is not ready to confirm")
	ErrNotClimb       = errors.New("pending action is not a climb")
	ErrUnknownKind    = errors.New("unknown selection kind")
	ErrInvalidDelta   = errors.New("quantity delta must be positive")
)
