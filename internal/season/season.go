// Package season loads the season-specific game configuration: the point
// table, the validation field mappings against the official score
// breakdown, and the discrepancy thresholds. Game rules change every year;
// everything here is data the core treats as opaque.
package season

import "github.com/kestrelrobotics/matchbook/internal/domain/scoring"

// FieldMapping ties one scouted counter to one field of the official
// score breakdown. The official schema changes yearly, so the breakdown
// key is a dotted path resolved at comparison time.
type FieldMapping struct {
	// Category groups comparisons for thresholds and display, e.g.
	// "auto-scoring", "climbing".
	Category string `koanf:"category"`

	// ScoutedKey is a phase-qualified counter key, e.g. "auto.fuel_scored".
	ScoutedKey string `koanf:"scouted_key"`

	// OfficialKey is a dotted path into the per-alliance breakdown map,
	// e.g. "autoCargoTotal" or "endgame.totalPoints".
	OfficialKey string `koanf:"official_key"`

	// Unit is an optional display unit for the comparison.
	Unit string `koanf:"unit"`
}

// Thresholds classifies a scouted-vs-official difference into severity
// tiers. Values are compared against the absolute difference, or against
// the percentage difference relative to the official value when Relative
// is set.
type Thresholds struct {
	Minor    float64 `koanf:"minor"`
	Warning  float64 `koanf:"warning"`
	Critical float64 `koanf:"critical"`
	Relative bool    `koanf:"relative"`
}

// ValidationConfig carries the season's comparison setup.
type ValidationConfig struct {
	Mappings []FieldMapping `koanf:"mappings"`

	// Thresholds by category; Default applies to unlisted categories.
	Thresholds map[string]Thresholds `koanf:"thresholds"`
	Default    Thresholds            `koanf:"default_thresholds"`
}

// Config is one season's complete game configuration.
type Config struct {
	// Name identifies the season/game, e.g. "fuel_frenzy_2026".
	Name string `koanf:"name"`

	// Points maps counter keys to point values per phase.
	Points struct {
		Auto    map[string]float64 `koanf:"auto"`
		Teleop  map[string]float64 `koanf:"teleop"`
		Endgame map[string]float64 `koanf:"endgame"`
	} `koanf:"points"`

	Validation ValidationConfig `koanf:"validation"`
}

// PointTable converts the season's point config into the scoring shape.
func (c *Config) PointTable() scoring.PointTable {
	return scoring.PointTable{
		Auto:    c.Points.Auto,
		Teleop:  c.Points.Teleop,
		Endgame: c.Points.Endgame,
	}
}

// ThresholdsFor returns the category's thresholds, falling back to the
// season default.
func (c *Config) ThresholdsFor(category string) Thresholds {
	if t, ok := c.Validation.Thresholds[category]; ok {
		return t
	}
	return c.Validation.Default
}
