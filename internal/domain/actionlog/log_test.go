package actionlog_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/actionlog"
	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

func TestLog(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	Convey("Given an empty action log", t, func() {
		l := actionlog.New()

		Convey("Then it has no entries", func() {
			So(l.Len(), ShouldEqual, 0)

			_, ok := l.Last()
			So(ok, ShouldBeFalse)
		})

		Convey("When undoing on the empty log", func() {
			_, ok := l.UndoLast()

			Convey("Then it is a no-op", func() {
				So(ok, ShouldBeFalse)
				So(l.Len(), ShouldEqual, 0)
			})
		})

		Convey("When appending actions in order", func() {
			l.Append(model.Action{ID: "a", Type: model.ActionScore, CommittedAt: base})
			l.Append(model.Action{ID: "b", Type: model.ActionCollect, CommittedAt: base.Add(time.Second)})

			Convey("Then they are kept in commit order", func() {
				So(l.Len(), ShouldEqual, 2)
				actions := l.Actions()
				So(actions[0].ID, ShouldEqual, "a")
				So(actions[1].ID, ShouldEqual, "b")
			})

			Convey("And Last returns the tail without removing it", func() {
				last, ok := l.Last()
				So(ok, ShouldBeTrue)
				So(last.ID, ShouldEqual, "b")
				So(l.Len(), ShouldEqual, 2)
			})

			Convey("And UndoLast removes exactly the tail", func() {
				undone, ok := l.UndoLast()
				So(ok, ShouldBeTrue)
				So(undone.ID, ShouldEqual, "b")
				So(l.Len(), ShouldEqual, 1)

				last, ok := l.Last()
				So(ok, ShouldBeTrue)
				So(last.ID, ShouldEqual, "a")
			})
		})

		Convey("When the device clock steps backwards between commits", func() {
			l.Append(model.Action{ID: "a", CommittedAt: base})
			l.Append(model.Action{ID: "b", CommittedAt: base.Add(-time.Minute)})

			Convey("Then the later entry is clamped to the previous timestamp", func() {
				actions := l.Actions()
				So(actions[1].CommittedAt, ShouldEqual, base)
				So(actions[1].CommittedAt.Before(actions[0].CommittedAt), ShouldBeFalse)
			})
		})

		Convey("When mutating the returned slice", func() {
			l.Append(model.Action{ID: "a", CommittedAt: base})
			actions := l.Actions()
			actions[0].ID = "mutated"

			Convey("Then the log is unaffected", func() {
				fresh := l.Actions()
				So(fresh[0].ID, ShouldEqual, "a")
			})
		})
	})
}
