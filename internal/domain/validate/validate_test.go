package validate_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/validate"
	"github.com/kestrelrobotics/matchbook/internal/season"
)

// allianceRecords builds three scouted records whose auto fuel counts sum
// to the given total.
func allianceRecords(autoFuel ...int) []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(autoFuel))
	for i, fuel := range autoFuel {
		var rec model.MatchRecord
		rec.TeamNumber = 100 + i
		rec.Alliance = model.AllianceRed
		rec.Counters.Auto.FuelScored = fuel
		out = append(out, rec)
	}
	return out
}

func TestEngineCompare(t *testing.T) {
	Convey("Given an engine on the default season", t, func() {
		engine := validate.NewEngine(season.Default())

		Convey("When scouted totals exactly match the official breakdown", func() {
			records := allianceRecords(3, 2, 1)
			breakdown := map[string]any{
				"autoFuelCount":   float64(6),
				"teleopFuelCount": float64(0),
				"foulCount":       float64(0),
			}
			categories := engine.Compare(records, breakdown)

			Convey("Then every comparison is severity none", func() {
				So(validate.Overall(categories), ShouldEqual, validate.SeverityNone)
				for _, cat := range categories {
					So(cat.Severity, ShouldEqual, validate.SeverityNone)
				}
			})

			Convey("And categories preserve mapping order", func() {
				So(len(categories), ShouldEqual, 3)
				So(categories[0].Category, ShouldEqual, "auto-scoring")
				So(categories[1].Category, ShouldEqual, "teleop-scoring")
				So(categories[2].Category, ShouldEqual, "fouls")
			})
		})

		Convey("When the scouted total differs within the warning band", func() {
			// Default thresholds: minor >1, warning >3, critical >6.
			records := allianceRecords(3)
			breakdown := map[string]any{"autoFuelCount": float64(5)}
			categories := engine.Compare(records, breakdown)

			Convey("Then the difference of 2 classifies as minor", func() {
				So(categories[0].Severity, ShouldEqual, validate.SeverityMinor)
				So(categories[0].Comparisons[0].Scouted, ShouldEqual, 3)
				So(categories[0].Comparisons[0].Official, ShouldEqual, 5)
			})
		})

		Convey("When the scouted total differs past the critical bound", func() {
			records := allianceRecords(20)
			breakdown := map[string]any{"autoFuelCount": float64(5)}
			categories := engine.Compare(records, breakdown)

			So(categories[0].Severity, ShouldEqual, validate.SeverityCritical)
			So(validate.Overall(categories), ShouldEqual, validate.SeverityCritical)
		})

		Convey("When an official field is missing from the breakdown", func() {
			records := allianceRecords(4)
			categories := engine.Compare(records, map[string]any{})

			Convey("Then it is compared as zero and surfaces as a discrepancy", func() {
				So(categories[0].Comparisons[0].Official, ShouldEqual, 0)
				So(categories[0].Severity, ShouldBeGreaterThan, validate.SeverityNone)
			})
		})

		Convey("When a single foul is miscounted", func() {
			var rec model.MatchRecord
			rec.Counters.Teleop.Fouls = 2
			categories := engine.Compare([]model.MatchRecord{rec}, map[string]any{
				"autoFuelCount":   float64(0),
				"teleopFuelCount": float64(0),
				"foulCount":       float64(0),
			})

			Convey("Then the fouls category uses its tighter thresholds", func() {
				// fouls: minor >0, warning >1, critical >3.
				var fouls validate.CategoryResult
				for _, cat := range categories {
					if cat.Category == "fouls" {
						fouls = cat
					}
				}
				So(fouls.Severity, ShouldEqual, validate.SeverityWarning)
			})
		})
	})
}

func TestEngineRelativeThresholds(t *testing.T) {
	Convey("Given a season with relative thresholds", t, func() {
		cfg := season.Default()
		cfg.Validation.Default = season.Thresholds{Minor: 10, Warning: 25, Critical: 50, Relative: true}
		cfg.Validation.Thresholds = nil
		engine := validate.NewEngine(cfg)

		Convey("When scouted is 30% off the official value", func() {
			records := allianceRecords(13)
			breakdown := map[string]any{"autoFuelCount": float64(10)}
			categories := engine.Compare(records, breakdown)

			Convey("Then the percentage difference classifies as warning", func() {
				So(categories[0].Severity, ShouldEqual, validate.SeverityWarning)
			})
		})

		Convey("When the official value is zero", func() {
			records := allianceRecords(1)
			breakdown := map[string]any{"autoFuelCount": float64(0)}
			categories := engine.Compare(records, breakdown)

			Convey("Then the base clamps to one instead of dividing by zero", func() {
				So(categories[0].Severity, ShouldEqual, validate.SeverityCritical)
			})
		})
	})
}

func TestValidateRoster(t *testing.T) {
	Convey("Given an engine and official rosters", t, func() {
		engine := validate.NewEngine(season.Default())
		rosters := map[model.Alliance][]int{
			model.AllianceRed:  {100, 101, 102},
			model.AllianceBlue: {200, 201, 202},
		}

		Convey("When every scouted team is on the expected alliance", func() {
			results := engine.ValidateRoster(allianceRecords(1, 2, 3), model.AllianceRed, rosters)

			Convey("Then all teams pass", func() {
				So(len(results), ShouldEqual, 3)
				for _, res := range results {
					So(res.WasInMatch, ShouldBeTrue)
					So(res.ActualAlliance, ShouldEqual, model.AllianceRed)
					So(res.Error, ShouldBeEmpty)
				}
			})
		})

		Convey("When a team was scouted for the wrong alliance", func() {
			var rec model.MatchRecord
			rec.TeamNumber = 200
			results := engine.ValidateRoster([]model.MatchRecord{rec}, model.AllianceRed, rosters)

			Convey("Then it is flagged with the actual alliance", func() {
				So(results[0].WasInMatch, ShouldBeTrue)
				So(results[0].ActualAlliance, ShouldEqual, model.AllianceBlue)
				So(results[0].Error, ShouldContainSubstring, "played on blue")
			})
		})

		Convey("When a scouted team was not in the match at all", func() {
			var rec model.MatchRecord
			rec.TeamNumber = 999
			results := engine.ValidateRoster([]model.MatchRecord{rec}, model.AllianceRed, rosters)

			So(results[0].WasInMatch, ShouldBeFalse)
			So(results[0].Error, ShouldContainSubstring, "not in this match")
		})
	})
}

func TestSeverityString(t *testing.T) {
	Convey("Severity names render for report output", t, func() {
		So(validate.SeverityNone.String(), ShouldEqual, "none")
		So(validate.SeverityMinor.String(), ShouldEqual, "minor")
		So(validate.SeverityWarning.String(), ShouldEqual, "warning")
		So(validate.SeverityCritical.String(), ShouldEqual, "critical")
	})
}
