// Package validate compares summed alliance counters against the official
// score breakdown and checks scouted rosters against the official alliance
// lists. Everything here is advisory: results are data, never hard
// failures, and validation never blocks persistence.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/season"
)

// Severity classifies one scouted-vs-official discrepancy.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMinor
	SeverityWarning
	SeverityCritical
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityMinor:
		return "minor"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText renders the severity as its name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FieldComparison is one validated metric: the alliance's summed scouted
// value against the official breakdown value.
type FieldComparison struct {
	Category string   `json:"category"`
	Field    string   `json:"field"`
	Scouted  float64  `json:"scouted_value"`
	Official float64  `json:"official_value"`
	Unit     string   `json:"unit,omitempty"`
	Severity Severity `json:"severity"`
}

// CategoryResult groups comparisons under one named category; its severity
// is the worst of its comparisons.
type CategoryResult struct {
	Category    string            `json:"category"`
	Severity    Severity          `json:"severity"`
	Comparisons []FieldComparison `json:"comparisons"`
}

// TeamValidationResult reports whether a scouted team was actually in the
// match on the expected alliance.
type TeamValidationResult struct {
	TeamNumber       int            `json:"team_number"`
	WasInMatch       bool           `json:"was_in_match"`
	ExpectedAlliance model.Alliance `json:"expected_alliance"`
	ActualAlliance   model.Alliance `json:"actual_alliance,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// Report is the full validation output for one alliance in one match.
type Report struct {
	MatchKey   string                 `json:"match_key"`
	Alliance   model.Alliance         `json:"alliance"`
	Severity   Severity               `json:"severity"`
	Categories []CategoryResult       `json:"categories"`
	Teams      []TeamValidationResult `json:"teams"`
}

// Engine compares scouted data with official results. Schema-agnostic: the
// official breakdown is an opaque map reached only through the season's
// field mappings.
type Engine struct {
	mappings   []season.FieldMapping
	thresholds func(category string) season.Thresholds
}

// NewEngine builds an engine from the season configuration.
func NewEngine(cfg *season.Config) *Engine {
	return &Engine{
		mappings:   cfg.Validation.Mappings,
		thresholds: cfg.ThresholdsFor,
	}
}

// Compare sums the alliance's scouted records field-by-field and compares
// each mapped value against the official breakdown. Missing official
// fields default to zero and are still compared, so absent season data
// surfaces as a visible discrepancy rather than silent success.
func (e *Engine) Compare(records []model.MatchRecord, breakdown map[string]any) []CategoryResult {
	totals := make(map[string]float64)
	for _, rec := range records {
		for k, v := range rec.Counters.Flatten() {
			totals[k] += v
		}
	}

	grouped := make(map[string]*CategoryResult)
	var order []string
	for _, m := range e.mappings {
		cmp := FieldComparison{
			Category: m.Category,
			Field:    m.ScoutedKey,
			Scouted:  totals[m.ScoutedKey],
			Official: lookupPath(breakdown, m.OfficialKey),
			Unit:     m.Unit,
		}
		cmp.Severity = classify(cmp.Scouted, cmp.Official, e.thresholds(m.Category))

		g, ok := grouped[m.Category]
		if !ok {
			g = &CategoryResult{Category: m.Category}
			grouped[m.Category] = g
			order = append(order, m.Category)
		}
		g.Comparisons = append(g.Comparisons, cmp)
		if cmp.Severity > g.Severity {
			g.Severity = cmp.Severity
		}
	}

	out := make([]CategoryResult, 0, len(order))
	for _, cat := range order {
		out = append(out, *grouped[cat])
	}
	return out
}

// ValidateRoster checks each scouted team against the official rosters.
// A team on the opposing alliance gets a specific wrong-alliance error; a
// team in neither roster is reported as not in the match. Advisory only.
func (e *Engine) ValidateRoster(records []model.MatchRecord, expected model.Alliance, rosters map[model.Alliance][]int) []TeamValidationResult {
	out := make([]TeamValidationResult, 0, len(records))
	for _, rec := range records {
		res := TeamValidationResult{
			TeamNumber:       rec.TeamNumber,
			ExpectedAlliance: expected,
		}
		switch {
		case contains(rosters[expected], rec.TeamNumber):
			res.WasInMatch = true
			res.ActualAlliance = expected
		case contains(rosters[expected.Opposing()], rec.TeamNumber):
			res.WasInMatch = true
			res.ActualAlliance = expected.Opposing()
			res.Error = fmt.Sprintf("team %d was scouted for the %s alliance but played on %s", rec.TeamNumber, expected, expected.Opposing())
		default:
			res.Error = fmt.Sprintf("team %d was not in this match", rec.TeamNumber)
		}
		out = append(out, res)
	}
	return out
}

// Overall returns the worst severity across a set of category results.
func Overall(categories []CategoryResult) Severity {
	worst := SeverityNone
	for _, c := range categories {
		if c.Severity > worst {
			worst = c.Severity
		}
	}
	return worst
}

// classify tiers the difference: strictly above critical/warning/minor
// bounds, in that order. Relative thresholds measure percentage difference
// against the official value.
func classify(scouted, official float64, t season.Thresholds) Severity {
	diff := math.Abs(scouted - official)
	if t.Relative {
		base := math.Abs(official)
		if base < 1 {
			base = 1
		}
		diff = diff / base * 100
	}
	switch {
	case t.Critical > 0 && diff > t.Critical:
		return SeverityCritical
	case t.Warning > 0 && diff > t.Warning:
		return SeverityWarning
	case diff > t.Minor:
		return SeverityMinor
	default:
		return SeverityNone
	}
}

// lookupPath resolves a dotted path in the opaque breakdown, converting
// the leaf to a float64. Anything missing or non-numeric is zero.
func lookupPath(breakdown map[string]any, path string) float64 {
	if breakdown == nil || path == "" {
		return 0
	}
	cur := any(breakdown)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return 0
		}
		cur, ok = m[part]
		if !ok {
			return 0
		}
	}
	switch v := cur.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func contains(teams []int, team int) bool {
	for _, t := range teams {
		if t == team {
			return true
		}
	}
	return false
}
