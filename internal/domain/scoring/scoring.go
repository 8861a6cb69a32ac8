// Package scoring computes point values from counter records, driven by a
// season-supplied point table.
package scoring

import (
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// PointTable maps counter keys to point values per phase. Season-defined
// and treated as opaque: a table is never required to cover every key, and
// an absent entry contributes zero.
type PointTable struct {
	Auto    map[string]float64
	Teleop  map[string]float64
	Endgame map[string]float64
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithPointTable sets the season point table. Maps are copied so later
// config mutation cannot change scoring mid-event.
func WithPointTable(table PointTable) Option {
	return func(c *Calculator) {
		c.table = PointTable{
			Auto:    copyTable(table.Auto),
			Teleop:  copyTable(table.Teleop),
			Endgame: copyTable(table.Endgame),
		}
	}
}

// Calculator scores counter records. Pure and stateless after construction;
// safe for concurrent use.
type Calculator struct {
	table PointTable
}

// NewCalculator creates a calculator. Without a point table every record
// scores zero, which is the correct degenerate behavior for a season with
// no config yet.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score sums count x points over every configured key per phase; booleans
// flatten to 0/1 so toggle bonuses fall out of the same sum. Total is
// always the sum of the three phases.
func (c *Calculator) Score(rec model.CounterRecord) model.ScoringResult {
	flat := rec.Flatten()
	res := model.ScoringResult{
		AutoPoints:    phaseSum(flat, "auto.", c.table.Auto),
		TeleopPoints:  phaseSum(flat, "teleop.", c.table.Teleop),
		EndgamePoints: phaseSum(flat, "endgame.", c.table.Endgame),
	}
	res.TotalPoints = res.AutoPoints + res.TeleopPoints + res.EndgamePoints
	return res
}

func phaseSum(flat map[string]float64, prefix string, table map[string]float64) float64 {
	var total float64
	for key, points := range table {
		// Tolerate both bare and phase-qualified keys in config.
		k := key
		if !strings.Contains(k, ".") {
			k = prefix + k
		}
		total += flat[k] * points
	}
	return total
}

func copyTable(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
