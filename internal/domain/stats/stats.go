// Package stats folds a team's match records into averages, rates, and raw
// per-match series for alliance-selection tooling. Aggregation is pure and
// recomputed on demand from persisted records, never cached.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// Series keys exposed for distribution displays.
const (
	SeriesAutoPoints    = "auto_points"
	SeriesTeleopPoints  = "teleop_points"
	SeriesEndgamePoints = "endgame_points"
	SeriesTotalPoints   = "total_points"
	SeriesFuelScored    = "fuel_scored"
	SeriesFuelPassed    = "fuel_passed"
	SeriesFuelCollected = "fuel_collected"
)

// TeamStats aggregates every persisted match record for one team. Rates
// are percentages of matches in which the condition occurred, rounded.
type TeamStats struct {
	TeamNumber int `json:"team_number"`
	MatchCount int `json:"match_count"`

	AvgAutoPoints    float64 `json:"avg_auto_points"`
	AvgTeleopPoints  float64 `json:"avg_teleop_points"`
	AvgEndgamePoints float64 `json:"avg_endgame_points"`
	AvgTotalPoints   float64 `json:"avg_total_points"`
	StdDevTotal      float64 `json:"stddev_total_points"`

	AvgFuelScored    float64 `json:"avg_fuel_scored"`
	AvgFuelPassed    float64 `json:"avg_fuel_passed"`
	AvgFuelCollected float64 `json:"avg_fuel_collected"`

	MobilityRate     float64 `json:"mobility_rate"`
	ClimbAttemptRate float64 `json:"climb_attempt_rate"`
	ClimbSuccessRate float64 `json:"climb_success_rate"`
	BreakdownRate    float64 `json:"breakdown_rate"`
	StuckRate        float64 `json:"stuck_rate"`
	FoulRate         float64 `json:"foul_rate"`

	// StartPositions is a histogram of auto start positions as a
	// percentage of matches per bucket; unset positions are not counted,
	// so the sum may be below 100.
	StartPositions map[string]float64 `json:"start_positions"`

	// Series holds raw per-match values in record order for
	// distribution/statistical-spread display.
	Series map[string][]float64 `json:"series"`
}

// Aggregate computes team statistics over the given match records. An
// empty set yields a well-formed all-zero result with initialized maps;
// empty team data is a common, expected case.
func Aggregate(teamNumber int, records []model.MatchRecord) TeamStats {
	ts := TeamStats{
		TeamNumber:     teamNumber,
		MatchCount:     len(records),
		StartPositions: make(map[string]float64),
		Series: map[string][]float64{
			SeriesAutoPoints:    {},
			SeriesTeleopPoints:  {},
			SeriesEndgamePoints: {},
			SeriesTotalPoints:   {},
			SeriesFuelScored:    {},
			SeriesFuelPassed:    {},
			SeriesFuelCollected: {},
		},
	}
	if len(records) == 0 {
		return ts
	}

	var mobility, climbAttempts, climbSuccesses, breakdowns, stuck, fouls int
	startCounts := make(map[string]int)

	for _, rec := range records {
		c := rec.Counters
		ts.Series[SeriesAutoPoints] = append(ts.Series[SeriesAutoPoints], rec.Points.AutoPoints)
		ts.Series[SeriesTeleopPoints] = append(ts.Series[SeriesTeleopPoints], rec.Points.TeleopPoints)
		ts.Series[SeriesEndgamePoints] = append(ts.Series[SeriesEndgamePoints], rec.Points.EndgamePoints)
		ts.Series[SeriesTotalPoints] = append(ts.Series[SeriesTotalPoints], rec.Points.TotalPoints)
		ts.Series[SeriesFuelScored] = append(ts.Series[SeriesFuelScored], float64(c.Auto.FuelScored+c.Teleop.FuelScored))
		ts.Series[SeriesFuelPassed] = append(ts.Series[SeriesFuelPassed], float64(c.Auto.FuelPassed+c.Teleop.FuelPassed))
		ts.Series[SeriesFuelCollected] = append(ts.Series[SeriesFuelCollected], float64(c.Auto.FuelCollected+c.Teleop.FuelCollected))

		if c.Auto.Mobility {
			mobility++
		}
		if c.Endgame.ClimbAttempted {
			climbAttempts++
		}
		if c.Endgame.ClimbL1 || c.Endgame.ClimbL2 || c.Endgame.ClimbL3 {
			climbSuccesses++
		}
		if c.Teleop.BreakdownSeconds > 0 {
			breakdowns++
		}
		if c.Auto.StuckCount > 0 || c.Teleop.StuckCount > 0 {
			stuck++
		}
		if c.Auto.Fouls > 0 || c.Teleop.Fouls > 0 {
			fouls++
		}
		if pos := c.Auto.StartPosition; pos != "" {
			startCounts[pos]++
		}
	}

	ts.AvgAutoPoints = stat.Mean(ts.Series[SeriesAutoPoints], nil)
	ts.AvgTeleopPoints = stat.Mean(ts.Series[SeriesTeleopPoints], nil)
	ts.AvgEndgamePoints = stat.Mean(ts.Series[SeriesEndgamePoints], nil)
	ts.AvgTotalPoints = stat.Mean(ts.Series[SeriesTotalPoints], nil)
	if len(records) > 1 {
		ts.StdDevTotal = stat.StdDev(ts.Series[SeriesTotalPoints], nil)
	}
	ts.AvgFuelScored = stat.Mean(ts.Series[SeriesFuelScored], nil)
	ts.AvgFuelPassed = stat.Mean(ts.Series[SeriesFuelPassed], nil)
	ts.AvgFuelCollected = stat.Mean(ts.Series[SeriesFuelCollected], nil)

	n := len(records)
	ts.MobilityRate = rate(mobility, n)
	ts.ClimbAttemptRate = rate(climbAttempts, n)
	ts.ClimbSuccessRate = rate(climbSuccesses, n)
	ts.BreakdownRate = rate(breakdowns, n)
	ts.StuckRate = rate(stuck, n)
	ts.FoulRate = rate(fouls, n)

	for pos, count := range startCounts {
		ts.StartPositions[pos] = rate(count, n)
	}
	return ts
}

// rate is occurrences per match as a rounded percentage; zero when there
// are no matches, never a divide by zero.
func rate(occurrences, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return math.Round(float64(occurrences) / float64(matches) * 100)
}
