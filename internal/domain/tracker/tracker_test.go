package tracker_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/tracker"
)

// fakeClock advances by a fixed step on every read so intervals measured
// between two reads always have a deterministic duration.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestTrackerSelectionFlow(t *testing.T) {
	Convey("Given an idle teleop tracker", t, func() {
		tr := tracker.New(model.PhaseTeleop, tracker.WithClock(newFakeClock(time.Second).Now))
		So(tr.State(), ShouldEqual, tracker.StateIdle)

		Convey("When scoring fuel through the full flow", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)
			So(tr.State(), ShouldEqual, tracker.StateSelecting)

			So(tr.SelectTarget("boiler_close"), ShouldBeNil)
			So(tr.State(), ShouldEqual, tracker.StateConfirming)

			So(tr.AddQuantity(1), ShouldBeNil)
			So(tr.AddQuantity(2), ShouldBeNil)
			So(tr.Confirm(), ShouldBeNil)

			Convey("Then one score action commits with a negative fuel delta", func() {
				So(tr.State(), ShouldEqual, tracker.StateIdle)
				So(tr.Log().Len(), ShouldEqual, 1)

				a, ok := tr.Log().Last()
				So(ok, ShouldBeTrue)
				So(a.Type, ShouldEqual, model.ActionScore)
				So(a.Position, ShouldEqual, "boiler_close")
				So(a.FuelDelta, ShouldEqual, -3)
				So(a.AmountLabel, ShouldEqual, "x3")
				So(a.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When collecting fuel", func() {
			So(tr.Begin(tracker.SelectCollect), ShouldBeNil)
			So(tr.SelectTarget("depot"), ShouldBeNil)
			So(tr.AddQuantity(4), ShouldBeNil)
			So(tr.Confirm(), ShouldBeNil)

			Convey("Then the delta commits positive", func() {
				a, _ := tr.Log().Last()
				So(a.Type, ShouldEqual, model.ActionCollect)
				So(a.FuelDelta, ShouldEqual, 4)
			})
		})

		Convey("When undoing quantity taps before confirm", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)
			So(tr.SelectTarget("boiler_far"), ShouldBeNil)
			So(tr.AddQuantity(1), ShouldBeNil)
			So(tr.AddQuantity(5), ShouldBeNil)
			tr.UndoQuantity()

			Convey("Then only the most recent tap is popped", func() {
				p, ok := tr.Pending()
				So(ok, ShouldBeTrue)
				So(p.Quantity, ShouldEqual, 1)
			})

			Convey("And undoing past empty is a no-op", func() {
				tr.UndoQuantity()
				tr.UndoQuantity()
				p, _ := tr.Pending()
				So(p.Quantity, ShouldEqual, 0)
			})
		})

		Convey("When confirming a zero-quantity draft", func() {
			So(tr.Begin(tracker.SelectPass), ShouldBeNil)
			So(tr.SelectTarget("partner"), ShouldBeNil)

			Convey("Then confirm is rejected", func() {
				So(tr.CanConfirm(), ShouldBeFalse)
				So(tr.Confirm(), ShouldEqual, tracker.ErrNotConfirmable)
				So(tr.Log().Len(), ShouldEqual, 0)
			})
		})

		Convey("When canceling a draft", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)
			So(tr.SelectTarget("boiler_mid"), ShouldBeNil)
			So(tr.AddQuantity(2), ShouldBeNil)
			tr.Cancel()

			Convey("Then nothing commits and the tracker is idle again", func() {
				So(tr.State(), ShouldEqual, tracker.StateIdle)
				So(tr.Log().Len(), ShouldEqual, 0)
				_, ok := tr.Pending()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When beginning while a selection is in progress", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)

			Convey("Then a second begin is rejected as busy", func() {
				So(tr.Begin(tracker.SelectPass), ShouldEqual, tracker.ErrBusy)
			})
		})

		Convey("When adding a non-positive quantity", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)
			So(tr.SelectTarget("boiler_close"), ShouldBeNil)

			So(tr.AddQuantity(0), ShouldEqual, tracker.ErrInvalidDelta)
			So(tr.AddQuantity(-2), ShouldEqual, tracker.ErrInvalidDelta)
		})
	})
}

func TestTrackerClimb(t *testing.T) {
	Convey("Given an idle teleop tracker", t, func() {
		tr := tracker.New(model.PhaseTeleop, tracker.WithClock(newFakeClock(time.Second).Now))

		Convey("When climbing successfully to L2", func() {
			So(tr.BeginClimb(), ShouldBeNil)

			Convey("Then confirm stays unavailable until an outcome is set", func() {
				So(tr.CanConfirm(), ShouldBeFalse)
				So(tr.Confirm(), ShouldEqual, tracker.ErrNotConfirmable)
			})

			So(tr.SetClimbOutcome(model.ClimbLevelL2, model.ClimbResultSuccess), ShouldBeNil)
			So(tr.CanConfirm(), ShouldBeTrue)
			So(tr.Confirm(), ShouldBeNil)

			Convey("Then the climb action carries level and result", func() {
				a, ok := tr.Log().Last()
				So(ok, ShouldBeTrue)
				So(a.Type, ShouldEqual, model.ActionClimb)
				So(a.ClimbLevel, ShouldEqual, model.ClimbLevelL2)
				So(a.ClimbResult, ShouldEqual, model.ClimbResultSuccess)
			})
		})

		Convey("When adding quantity to a climb draft", func() {
			So(tr.BeginClimb(), ShouldBeNil)

			Convey("Then it is rejected", func() {
				So(tr.AddQuantity(1), ShouldEqual, tracker.ErrNotClimb)
			})
		})

		Convey("When setting a climb outcome with no draft", func() {
			So(tr.SetClimbOutcome(model.ClimbLevelL1, model.ClimbResultSuccess), ShouldEqual, tracker.ErrNoPending)
		})
	})
}

func TestTrackerQuickActions(t *testing.T) {
	Convey("Given an idle auto tracker", t, func() {
		tr := tracker.New(model.PhaseAuto, tracker.WithClock(newFakeClock(time.Second).Now))

		Convey("When committing quick actions", func() {
			So(tr.Quick(model.ActionStart, "center"), ShouldBeNil)
			So(tr.Quick(model.ActionDefense, ""), ShouldBeNil)
			So(tr.Quick(model.ActionFoul, ""), ShouldBeNil)

			Convey("Then they commit immediately without confirmation", func() {
				So(tr.Log().Len(), ShouldEqual, 3)
				So(tr.State(), ShouldEqual, tracker.StateIdle)
			})
		})

		Convey("When committing a non-quick type", func() {
			So(tr.Quick(model.ActionScore, "boiler_close"), ShouldEqual, tracker.ErrUnknownKind)
		})

		Convey("When undoing the last commit", func() {
			So(tr.Quick(model.ActionStart, "left"), ShouldBeNil)
			So(tr.Quick(model.ActionSteal, ""), ShouldBeNil)

			undone, ok := tr.UndoLast()
			So(ok, ShouldBeTrue)
			So(undone.Type, ShouldEqual, model.ActionSteal)
			So(tr.Log().Len(), ShouldEqual, 1)
		})
	})
}

func TestTrackerStuck(t *testing.T) {
	Convey("Given a tracker with a one-second step clock", t, func() {
		tr := tracker.New(model.PhaseTeleop, tracker.WithClock(newFakeClock(time.Second).Now))

		Convey("When toggling a stuck interval open and closed", func() {
			So(tr.ToggleStuck("bump_left"), ShouldBeNil)
			So(tr.State(), ShouldEqual, tracker.StateStuckOpen)

			So(tr.ToggleStuck("bump_left"), ShouldBeNil)

			Convey("Then a traversal commits with a positive duration", func() {
				So(tr.State(), ShouldEqual, tracker.StateIdle)
				a, ok := tr.Log().Last()
				So(ok, ShouldBeTrue)
				So(a.Type, ShouldEqual, model.ActionTraversal)
				So(a.Position, ShouldEqual, "bump_left")
				So(a.Duration, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When closing against a different element", func() {
			So(tr.ToggleStuck("bump_left"), ShouldBeNil)

			Convey("Then it is rejected and the interval stays open", func() {
				So(tr.ToggleStuck("bump_right"), ShouldEqual, tracker.ErrBusy)
				So(tr.State(), ShouldEqual, tracker.StateStuckOpen)
			})
		})

		Convey("When opening while a selection is in progress", func() {
			So(tr.Begin(tracker.SelectScore), ShouldBeNil)
			So(tr.ToggleStuck("bump_left"), ShouldEqual, tracker.ErrBusy)
		})
	})
}

func TestTrackerBrokenDown(t *testing.T) {
	Convey("Given a tracker with a one-second step clock", t, func() {
		tr := tracker.New(model.PhaseTeleop, tracker.WithClock(newFakeClock(time.Second).Now))

		Convey("When the robot breaks down", func() {
			So(tr.ToggleBrokenDown(), ShouldBeNil)
			So(tr.State(), ShouldEqual, tracker.StateBrokenDown)

			Convey("Then every other interaction is blocked", func() {
				So(tr.Begin(tracker.SelectScore), ShouldEqual, tracker.ErrBrokenDown)
				So(tr.BeginClimb(), ShouldEqual, tracker.ErrBrokenDown)
				So(tr.Quick(model.ActionFoul, ""), ShouldEqual, tracker.ErrBrokenDown)
				So(tr.ToggleStuck("bump_left"), ShouldEqual, tracker.ErrBrokenDown)

				_, ok := tr.UndoLast()
				So(ok, ShouldBeFalse)
			})

			Convey("And resolving it accumulates downtime", func() {
				So(tr.ToggleBrokenDown(), ShouldBeNil)
				So(tr.State(), ShouldEqual, tracker.StateIdle)
				So(tr.Downtime(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestTrackerFinish(t *testing.T) {
	Convey("Given a tracker mid-phase", t, func() {
		tr := tracker.New(model.PhaseTeleop, tracker.WithClock(newFakeClock(time.Second).Now))
		So(tr.Quick(model.ActionDefense, ""), ShouldBeNil)
		tr.SetToggle("teleop.shield_up", true)

		Convey("When finishing with an open stuck interval", func() {
			So(tr.ToggleStuck("bump_right"), ShouldBeNil)

			actions, toggles, _ := tr.Finish()

			Convey("Then the interval is closed as a traversal ending at phase end", func() {
				So(len(actions), ShouldEqual, 2)
				So(actions[1].Type, ShouldEqual, model.ActionTraversal)
				So(actions[1].Duration, ShouldBeGreaterThan, 0)
				So(toggles["teleop.shield_up"], ShouldBeTrue)
			})

			Convey("And the tracker is reset for reuse", func() {
				So(tr.State(), ShouldEqual, tracker.StateIdle)
				So(tr.Log().Len(), ShouldEqual, 0)
				So(tr.Downtime(), ShouldEqual, 0)
			})
		})

		Convey("When finishing while broken down", func() {
			So(tr.ToggleBrokenDown(), ShouldBeNil)

			_, _, downtime := tr.Finish()

			Convey("Then the open breakdown interval lands in the downtime total", func() {
				So(downtime, ShouldBeGreaterThan, 0)
				So(tr.State(), ShouldEqual, tracker.StateIdle)
			})
		})
	})
}

func TestTrackerSingleDraft(t *testing.T) {
	Convey("Given a tracker with an active draft", t, func() {
		tr := tracker.New(model.PhaseTeleop)
		So(tr.BeginClimb(), ShouldBeNil)

		Convey("Then starting another draft is rejected as busy", func() {
			So(tr.BeginClimb(), ShouldEqual, tracker.ErrBusy)
			So(tr.Begin(tracker.SelectScore), ShouldEqual, tracker.ErrBusy)

			p, ok := tr.Pending()
			So(ok, ShouldBeTrue)
			So(p.IsClimb, ShouldBeTrue)
		})
	})
}
