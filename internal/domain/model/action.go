// Package model contains domain types passed between layers.
package model

import "time"

// Phase identifies the match phase an action was captured in.
type Phase string

// Match phases. Endgame is a counter bucket, not an input phase: climb
// actions are captured during teleop and routed to the endgame counters.
const (
	PhaseAuto   Phase = "auto"
	PhaseTeleop Phase = "teleop"
)

// ActionType tags a committed scouting action.
type ActionType string

// Known action types. Unknown types coming off the wire are tolerated by
// the transformer to survive schema drift across seasons.
const (
	ActionStart     ActionType = "start"
	ActionTraversal ActionType = "traversal"
	ActionScore     ActionType = "score"
	ActionPass      ActionType = "pass"
	ActionCollect   ActionType = "collect"
	ActionClimb     ActionType = "climb"
	ActionDefense   ActionType = "defense"
	ActionSteal     ActionType = "steal"
	ActionFoul      ActionType = "foul"
)

// ClimbLevel identifies the rung a climb targeted.
type ClimbLevel string

const (
	ClimbLevelNone ClimbLevel = ""
	ClimbLevelL1   ClimbLevel = "l1"
	ClimbLevelL2   ClimbLevel = "l2"
	ClimbLevelL3   ClimbLevel = "l3"
)

// ClimbResult records the outcome of a climb attempt.
type ClimbResult string

const (
	ClimbResultUnset   ClimbResult = ""
	ClimbResultSuccess ClimbResult = "success"
	ClimbResultFailure ClimbResult = "failure"
)

// Action is one immutable, committed scouting event. Once appended to an
// action log it is never mutated; only the most recent entry may be removed
// via undo.
type Action struct {
	ID          string        `json:"id"`
	Type        ActionType    `json:"type"`
	Phase       Phase         `json:"phase"`
	Position    string        `json:"position,omitempty"`
	FuelDelta   int           `json:"fuel_delta,omitempty"`
	AmountLabel string        `json:"amount_label,omitempty"`
	ClimbLevel  ClimbLevel    `json:"climb_level,omitempty"`
	ClimbResult ClimbResult   `json:"climb_result,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	CommittedAt time.Time     `json:"committed_at"`
}

// StatusToggles are flat booleans collected outside the action stream,
// keyed as "<phase>.<name>", e.g. "auto.mobility".
type StatusToggles map[string]bool

// Alliance is one of the two three-team groups competing in a match.
type Alliance string

const (
	AllianceRed  Alliance = "red"
	AllianceBlue Alliance = "blue"
)

// Opposing returns the other alliance color.
func (a Alliance) Opposing() Alliance {
	if a == AllianceRed {
		return AllianceBlue
	}
	return AllianceRed
}

// Valid reports whether the alliance is one of the two known colors.
func (a Alliance) Valid() bool {
	return a == AllianceRed || a == AllianceBlue
}
