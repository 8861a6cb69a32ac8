package model

// Canonical counter keys shared by the point table, validation mappings,
// and the flattened record. Phase-qualified as "<phase>.<key>" in Flatten.
const (
	KeyFuelScored       = "fuel_scored"
	KeyFuelPassed       = "fuel_passed"
	KeyFuelCollected    = "fuel_collected"
	KeySteals           = "steals"
	KeyCrossings        = "crossings"
	KeyStuckCount       = "stuck_count"
	KeyStuckSeconds     = "stuck_seconds"
	KeyDefensePlays     = "defense_plays"
	KeyFouls            = "fouls"
	KeyMobility         = "mobility"
	KeyBreakdownSeconds = "breakdown_seconds"
	KeyClimbAttempted   = "climb_attempted"
	KeyClimbFailed      = "climb_failed"
	KeyClimbL1          = "climb_l1"
	KeyClimbL2          = "climb_l2"
	KeyClimbL3          = "climb_l3"
)

// PhaseCounters holds the per-phase numeric counts derived from an action
// log. Every field is a non-negative integer; missing data is zero, never
// absent.
type PhaseCounters struct {
	FuelScored    int `json:"fuel_scored"`
	FuelPassed    int `json:"fuel_passed"`
	FuelCollected int `json:"fuel_collected"`
	Steals        int `json:"steals"`
	Crossings     int `json:"crossings"`
	StuckCount    int `json:"stuck_count"`
	StuckSeconds  int `json:"stuck_seconds"`
	DefensePlays  int `json:"defense_plays"`
	Fouls         int `json:"fouls"`

	// Extra carries season-specific counters that have no dedicated field.
	Extra map[string]int `json:"extra,omitempty"`
}

// AutoCounters extends the phase counts with autonomous-only data.
type AutoCounters struct {
	PhaseCounters
	Mobility      bool   `json:"mobility"`
	StartPosition string `json:"start_position,omitempty"`
}

// TeleopCounters extends the phase counts with teleop-only metadata.
type TeleopCounters struct {
	PhaseCounters
	BreakdownSeconds int `json:"breakdown_seconds"`
}

// EndgameCounters holds the endgame booleans, one per climb level and
// outcome.
type EndgameCounters struct {
	ClimbAttempted bool `json:"climb_attempted"`
	ClimbFailed    bool `json:"climb_failed"`
	ClimbL1        bool `json:"climb_l1"`
	ClimbL2        bool `json:"climb_l2"`
	ClimbL3        bool `json:"climb_l3"`

	Extra map[string]bool `json:"extra,omitempty"`
}

// CounterRecord is the canonical persisted summary of one robot's match,
// derived solely by folding an action log. It is the only structure handed
// to the persistence layer.
type CounterRecord struct {
	Auto    AutoCounters    `json:"auto"`
	Teleop  TeleopCounters  `json:"teleop"`
	Endgame EndgameCounters `json:"endgame"`
}

// Flatten renders the record as a flat map keyed "<phase>.<key>" with
// booleans as 0/1. Scoring, validation, and statistics all consume this
// shape so a counter has exactly one canonical name.
func (r CounterRecord) Flatten() map[string]float64 {
	flat := make(map[string]float64, 32)
	flattenPhase(flat, "auto.", r.Auto.PhaseCounters)
	flat["auto."+KeyMobility] = boolToFloat(r.Auto.Mobility)
	flattenPhase(flat, "teleop.", r.Teleop.PhaseCounters)
	flat["teleop."+KeyBreakdownSeconds] = float64(r.Teleop.BreakdownSeconds)
	flat["endgame."+KeyClimbAttempted] = boolToFloat(r.Endgame.ClimbAttempted)
	flat["endgame."+KeyClimbFailed] = boolToFloat(r.Endgame.ClimbFailed)
	flat["endgame."+KeyClimbL1] = boolToFloat(r.Endgame.ClimbL1)
	flat["endgame."+KeyClimbL2] = boolToFloat(r.Endgame.ClimbL2)
	flat["endgame."+KeyClimbL3] = boolToFloat(r.Endgame.ClimbL3)
	for k, v := range r.Endgame.Extra {
		flat["endgame."+k] = boolToFloat(v)
	}
	return flat
}

func flattenPhase(flat map[string]float64, prefix string, c PhaseCounters) {
	flat[prefix+KeyFuelScored] = float64(c.FuelScored)
	flat[prefix+KeyFuelPassed] = float64(c.FuelPassed)
	flat[prefix+KeyFuelCollected] = float64(c.FuelCollected)
	flat[prefix+KeySteals] = float64(c.Steals)
	flat[prefix+KeyCrossings] = float64(c.Crossings)
	flat[prefix+KeyStuckCount] = float64(c.StuckCount)
	flat[prefix+KeyStuckSeconds] = float64(c.StuckSeconds)
	flat[prefix+KeyDefensePlays] = float64(c.DefensePlays)
	flat[prefix+KeyFouls] = float64(c.Fouls)
	for k, v := range c.Extra {
		flat[prefix+k] = float64(v)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ScoringResult holds derived point values for one counter record. It is
// never stored independently of the record that produced it.
type ScoringResult struct {
	AutoPoints    float64 `json:"auto_points"`
	TeleopPoints  float64 `json:"teleop_points"`
	EndgamePoints float64 `json:"endgame_points"`
	TotalPoints   float64 `json:"total_points"`
}
