package transform_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/transform"
)

func TestTransform(t *testing.T) {
	Convey("Given a committed action stream", t, func() {
		actions := []model.Action{
			{Type: model.ActionStart, Phase: model.PhaseAuto, Position: "center"},
			{Type: model.ActionScore, Phase: model.PhaseAuto, FuelDelta: -2},
			{Type: model.ActionCollect, Phase: model.PhaseTeleop, FuelDelta: 5},
			{Type: model.ActionScore, Phase: model.PhaseTeleop, FuelDelta: -8},
			{Type: model.ActionScore, Phase: model.PhaseTeleop, FuelDelta: -8},
			{Type: model.ActionPass, Phase: model.PhaseTeleop, FuelDelta: -3},
			{Type: model.ActionSteal, Phase: model.PhaseTeleop},
			{Type: model.ActionDefense, Phase: model.PhaseTeleop},
			{Type: model.ActionFoul, Phase: model.PhaseTeleop},
			{Type: model.ActionTraversal, Phase: model.PhaseTeleop},
			{Type: model.ActionTraversal, Phase: model.PhaseTeleop, Duration: 4 * time.Second},
			{Type: model.ActionClimb, Phase: model.PhaseTeleop, ClimbLevel: model.ClimbLevelL3, ClimbResult: model.ClimbResultSuccess},
		}
		toggles := model.StatusToggles{"auto.mobility": true}

		Convey("When transforming it into a counter record", func() {
			rec := transform.Transform(actions, toggles)

			Convey("Then fuel deltas accumulate as magnitudes per phase", func() {
				So(rec.Auto.FuelScored, ShouldEqual, 2)
				So(rec.Teleop.FuelScored, ShouldEqual, 16)
				So(rec.Teleop.FuelCollected, ShouldEqual, 5)
				So(rec.Teleop.FuelPassed, ShouldEqual, 3)
			})

			Convey("Then event actions count once each", func() {
				So(rec.Teleop.Steals, ShouldEqual, 1)
				So(rec.Teleop.DefensePlays, ShouldEqual, 1)
				So(rec.Teleop.Fouls, ShouldEqual, 1)
			})

			Convey("Then traversals split on duration", func() {
				So(rec.Teleop.Crossings, ShouldEqual, 1)
				So(rec.Teleop.StuckCount, ShouldEqual, 1)
				So(rec.Teleop.StuckSeconds, ShouldEqual, 4)
			})

			Convey("Then the start position and mobility land in auto", func() {
				So(rec.Auto.StartPosition, ShouldEqual, "center")
				So(rec.Auto.Mobility, ShouldBeTrue)
			})

			Convey("Then a climb captured in teleop lands in the endgame bucket", func() {
				So(rec.Endgame.ClimbAttempted, ShouldBeTrue)
				So(rec.Endgame.ClimbL3, ShouldBeTrue)
				So(rec.Endgame.ClimbFailed, ShouldBeFalse)
			})
		})

		Convey("When transforming the same input twice", func() {
			first := transform.Transform(actions, toggles)
			second := transform.Transform(actions, toggles)

			Convey("Then the results are identical; nothing accumulates", func() {
				So(cmp.Diff(first, second), ShouldBeEmpty)
			})
		})
	})
}

func TestTransformEdgeCases(t *testing.T) {
	Convey("Given edge-case inputs", t, func() {
		Convey("When the action stream is empty", func() {
			rec := transform.Transform(nil, nil)

			Convey("Then every counter is zero, never absent", func() {
				So(rec.Auto.FuelScored, ShouldEqual, 0)
				So(rec.Teleop.FuelScored, ShouldEqual, 0)
				So(rec.Endgame.ClimbAttempted, ShouldBeFalse)
			})
		})

		Convey("When the stream carries an unknown action type", func() {
			rec := transform.Transform([]model.Action{
				{Type: model.ActionType("hologram"), Phase: model.PhaseTeleop, FuelDelta: 7},
				{Type: model.ActionScore, Phase: model.PhaseTeleop, FuelDelta: -1},
			}, nil)

			Convey("Then the unknown action is skipped, not an error", func() {
				So(rec.Teleop.FuelScored, ShouldEqual, 1)
			})
		})

		Convey("When a failed climb is recorded", func() {
			rec := transform.Transform([]model.Action{
				{Type: model.ActionClimb, Phase: model.PhaseTeleop, ClimbLevel: model.ClimbLevelL2, ClimbResult: model.ClimbResultFailure},
			}, nil)

			Convey("Then the attempt registers without any level flag", func() {
				So(rec.Endgame.ClimbAttempted, ShouldBeTrue)
				So(rec.Endgame.ClimbFailed, ShouldBeTrue)
				So(rec.Endgame.ClimbL2, ShouldBeFalse)
			})
		})

		Convey("When toggles use unknown names or phases", func() {
			rec := transform.Transform(nil, model.StatusToggles{
				"auto.balanced":    true,
				"teleop.shield_up": false,
				"endgame.parked":   true,
				"malformed":        true,
			})

			Convey("Then unknown names land in the phase escape hatch as 0/1", func() {
				So(rec.Auto.Extra["balanced"], ShouldEqual, 1)
				So(rec.Teleop.Extra["shield_up"], ShouldEqual, 0)
				So(rec.Endgame.Extra["parked"], ShouldBeTrue)
			})
		})
	})
}

func TestFlatten(t *testing.T) {
	Convey("Given a counter record", t, func() {
		rec := transform.Transform([]model.Action{
			{Type: model.ActionScore, Phase: model.PhaseAuto, FuelDelta: -3},
			{Type: model.ActionClimb, Phase: model.PhaseTeleop, ClimbLevel: model.ClimbLevelL1, ClimbResult: model.ClimbResultSuccess},
		}, model.StatusToggles{"auto.mobility": true})

		Convey("When flattening it", func() {
			flat := rec.Flatten()

			Convey("Then keys are phase-qualified and booleans are 0/1", func() {
				So(flat["auto.fuel_scored"], ShouldEqual, 3)
				So(flat["auto.mobility"], ShouldEqual, 1)
				So(flat["endgame.climb_l1"], ShouldEqual, 1)
				So(flat["endgame.climb_l2"], ShouldEqual, 0)
				So(flat["teleop.fuel_scored"], ShouldEqual, 0)
			})
		})
	})
}
