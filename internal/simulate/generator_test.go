package simulate_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/simulate"
)

func teams(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 100 + i
	}
	return out
}

func TestNewGenerator(t *testing.T) {
	Convey("Given a team pool", t, func() {
		Convey("When it is too small to fill a match", func() {
			_, err := simulate.NewGenerator(teams(5), 1)

			Convey("Then construction fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, simulate.ErrTooFewTeams.Error())
			})
		})

		Convey("When it has at least six teams", func() {
			gen, err := simulate.NewGenerator(teams(6), 1)
			So(err, ShouldBeNil)
			So(gen, ShouldNotBeNil)
		})
	})
}

func TestGeneratorMatch(t *testing.T) {
	Convey("Given a generator over twelve teams", t, func() {
		gen, err := simulate.NewGenerator(teams(12), 42)
		So(err, ShouldBeNil)

		Convey("When generating one match", func() {
			subs := gen.Match("2026sim", 1)

			Convey("Then six robots are scouted, three per alliance", func() {
				So(len(subs), ShouldEqual, 6)

				byAlliance := map[model.Alliance]int{}
				seen := map[int]bool{}
				for _, sub := range subs {
					byAlliance[sub.Alliance]++
					So(seen[sub.TeamNumber], ShouldBeFalse)
					seen[sub.TeamNumber] = true
				}
				So(byAlliance[model.AllianceRed], ShouldEqual, 3)
				So(byAlliance[model.AllianceBlue], ShouldEqual, 3)
			})

			Convey("Then every submission is well-formed", func() {
				for _, sub := range subs {
					So(sub.ID, ShouldNotBeEmpty)
					So(sub.MatchKey, ShouldEqual, "2026sim_qm1")
					So(sub.TeamNumber, ShouldBeGreaterThan, 0)
					So(sub.Alliance.Valid(), ShouldBeTrue)

					// Auto always opens with a start-position tap.
					So(len(sub.Auto), ShouldBeGreaterThanOrEqualTo, 1)
					So(sub.Auto[0].Type, ShouldEqual, model.ActionStart)
					So(sub.Auto[0].Phase, ShouldEqual, model.PhaseAuto)

					// A mobility toggle is always recorded, true or false.
					_, ok := sub.Toggles["auto.mobility"]
					So(ok, ShouldBeTrue)
				}
			})

			Convey("Then teleop streams carry committed activity", func() {
				total := 0
				for _, sub := range subs {
					total += len(sub.Teleop)
					for _, a := range sub.Teleop {
						So(a.Phase, ShouldEqual, model.PhaseTeleop)
						So(a.ID, ShouldNotBeEmpty)
					}
				}
				So(total, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When generating many matches", func() {
			for match := 1; match <= 20; match++ {
				subs := gen.Match("2026sim", match)
				So(len(subs), ShouldEqual, 6)
			}
		})
	})
}
