package season

import "errors"

// Sentinel kinds for season configuration errors.
var (
	ErrLoad    = errors.New("season config load failed")
	ErrParse   = errors.New("season config parse failed")
	ErrUnnamed = errors.New("season config must have a name")
)
