package simulate

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kestrelrobotics/matchbook/internal/domain/stats"
)

// WriteReport renders the post-run team stats as a ranked table, best
// average total first. Colors highlight climb and breakdown rates.
func WriteReport(w io.Writer, teamStats []stats.TeamStats, useColors bool) error {
	ranked := make([]stats.TeamStats, len(teamStats))
	copy(ranked, teamStats)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].AvgTotalPoints > ranked[j].AvgTotalPoints
	})

	var red, green, yellow func(...any) string
	if useColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		"Rank",
		"Team",
		"Matches",
		"Avg Total",
		"Std Dev",
		"Avg Auto",
		"Avg Teleop",
		"Avg Endgame",
		"Climb %",
		"Breakdown %",
	})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, ts := range ranked {
		climb := fmt.Sprintf("%.0f", ts.ClimbSuccessRate)
		switch {
		case ts.ClimbSuccessRate >= 70:
			climb = green(climb)
		case ts.ClimbSuccessRate >= 30:
			climb = yellow(climb)
		default:
			climb = red(climb)
		}
		breakdown := fmt.Sprintf("%.0f", ts.BreakdownRate)
		if ts.BreakdownRate > 0 {
			breakdown = red(breakdown)
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(ts.TeamNumber),
			strconv.Itoa(ts.MatchCount),
			fmt.Sprintf("%.1f", ts.AvgTotalPoints),
			fmt.Sprintf("%.1f", ts.StdDevTotal),
			fmt.Sprintf("%.1f", ts.AvgAutoPoints),
			fmt.Sprintf("%.1f", ts.AvgTeleopPoints),
			fmt.Sprintf("%.1f", ts.AvgEndgamePoints),
			climb,
			breakdown,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Ranked %d teams by average total points\n", len(ranked))
	return err
}
