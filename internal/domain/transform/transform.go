// Package transform folds a committed action stream into the canonical
// counter record. The fold is pure, total, deterministic, and idempotent:
// re-running on unchanged input yields a bit-identical record, and nothing
// accumulates across calls.
package transform

import (
	"math"
	"strings"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// Transform folds the action log left-to-right into a counter record, then
// overlays the raw status toggles. Unknown action types and toggle phases
// are skipped, not errors, to tolerate schema drift across seasons.
func Transform(actions []model.Action, toggles model.StatusToggles) model.CounterRecord {
	var rec model.CounterRecord
	for _, a := range actions {
		apply(&rec, a)
	}
	overlay(&rec, toggles)
	return rec
}

func apply(rec *model.CounterRecord, a model.Action) {
	c := phaseCounters(rec, a.Phase)
	switch a.Type {
	case model.ActionScore:
		c.FuelScored += abs(a.FuelDelta)
	case model.ActionPass:
		c.FuelPassed += abs(a.FuelDelta)
	case model.ActionCollect:
		c.FuelCollected += abs(a.FuelDelta)
	case model.ActionSteal:
		c.Steals++
	case model.ActionDefense:
		c.DefensePlays++
	case model.ActionFoul:
		c.Fouls++
	case model.ActionTraversal:
		if a.Duration > 0 {
			c.StuckCount++
			c.StuckSeconds += int(math.Round(a.Duration.Seconds()))
		} else {
			c.Crossings++
		}
	case model.ActionStart:
		if a.Phase == model.PhaseAuto {
			rec.Auto.StartPosition = a.Position
		}
	case model.ActionClimb:
		applyClimb(&rec.Endgame, a)
	default:
		// Unknown type: forward compatibility, skip.
	}
}

func applyClimb(e *model.EndgameCounters, a model.Action) {
	e.ClimbAttempted = true
	if a.ClimbResult != model.ClimbResultSuccess {
		e.ClimbFailed = true
		return
	}
	switch a.ClimbLevel {
	case model.ClimbLevelL1:
		e.ClimbL1 = true
	case model.ClimbLevelL2:
		e.ClimbL2 = true
	case model.ClimbLevelL3:
		e.ClimbL3 = true
	}
}

// overlay writes status toggles onto the record. Keys are phase-qualified
// ("auto.mobility"); known names map to dedicated fields and everything
// else lands in the phase's escape-hatch map.
func overlay(rec *model.CounterRecord, toggles model.StatusToggles) {
	for key, v := range toggles {
		phase, name, ok := strings.Cut(key, ".")
		if !ok {
			continue
		}
		switch model.Phase(phase) {
		case model.PhaseAuto:
			if name == model.KeyMobility {
				rec.Auto.Mobility = v
				continue
			}
			setExtra(&rec.Auto.PhaseCounters, name, v)
		case model.PhaseTeleop:
			setExtra(&rec.Teleop.PhaseCounters, name, v)
		default:
			if phase == "endgame" {
				if rec.Endgame.Extra == nil {
					rec.Endgame.Extra = make(map[string]bool)
				}
				rec.Endgame.Extra[name] = v
			}
		}
	}
}

func setExtra(c *model.PhaseCounters, name string, v bool) {
	if c.Extra == nil {
		c.Extra = make(map[string]int)
	}
	if v {
		c.Extra[name] = 1
	} else {
		c.Extra[name] = 0
	}
}

func phaseCounters(rec *model.CounterRecord, p model.Phase) *model.PhaseCounters {
	if p == model.PhaseAuto {
		return &rec.Auto.PhaseCounters
	}
	return &rec.Teleop.PhaseCounters
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
