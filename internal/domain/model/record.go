package model

import "time"

// MatchRecord is one robot's persisted match summary: the counter record
// plus the scoring derived from it and enough identity to join against
// official results.
type MatchRecord struct {
	ID         string        `json:"id"`
	EventKey   string        `json:"event_key"`
	MatchKey   string        `json:"match_key"`
	TeamNumber int           `json:"team_number"`
	Alliance   Alliance      `json:"alliance"`
	ScoutName  string        `json:"scout_name,omitempty"`
	Counters   CounterRecord `json:"counters"`
	Points     ScoringResult `json:"points"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Submission is the wire shape a scout's device sends when a match is
// finished: the raw per-phase action streams and status toggles, before
// any transformation. The action logs themselves are never persisted.
type Submission struct {
	ID               string        `json:"id"` // client-generated, used for idempotency
	EventKey         string        `json:"event_key"`
	MatchKey         string        `json:"match_key"`
	TeamNumber       int           `json:"team_number"`
	Alliance         Alliance      `json:"alliance"`
	ScoutName        string        `json:"scout_name,omitempty"`
	Auto             []Action      `json:"auto"`
	Teleop           []Action      `json:"teleop"`
	Toggles          StatusToggles `json:"toggles,omitempty"`
	BreakdownSeconds int           `json:"breakdown_seconds,omitempty"`
	SubmittedAt      time.Time     `json:"submitted_at"`
}

// Actions returns the combined commit-ordered action stream across phases.
func (s Submission) Actions() []Action {
	out := make([]Action, 0, len(s.Auto)+len(s.Teleop))
	out = append(out, s.Auto...)
	out = append(out, s.Teleop...)
	return out
}
