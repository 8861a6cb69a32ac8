// Package simulate generates plausible scouted matches by driving the real
// capture state machine, submits them over the service's HTTP API, and
// renders a post-run stats report. Useful for load drills and for seeding a
// demo event with believable data.
package simulate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/tracker"
)

const robotsPerAlliance = 3

var startPositions = []string{"left", "center", "right"}

var scoreTargets = []string{"boiler_close", "boiler_mid", "boiler_far"}

var collectSources = []string{"depot", "hopper", "floor"}

// stepClock is a deterministic time source: every Now call advances by one
// step, so stuck and breakdown intervals get non-zero durations without
// sleeping.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{t: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// Generator produces synthetic scout submissions. Each team gets a hidden
// skill factor so aggregated stats show a believable spread instead of
// uniform noise.
type Generator struct {
	rng   *rand.Rand
	teams []int
	skill map[int]float64
}

// NewGenerator creates a generator over the given team pool. The pool must
// hold at least six teams to fill a match.
func NewGenerator(teams []int, seed int64) (*Generator, error) {
	if len(teams) < 2*robotsPerAlliance {
		return nil, fmt.Errorf("%w: need at least %d teams, got %d", ErrTooFewTeams, 2*robotsPerAlliance, len(teams))
	}
	rng := rand.New(rand.NewSource(seed))
	skill := make(map[int]float64, len(teams))
	for _, t := range teams {
		skill[t] = 0.3 + rng.Float64()*0.7
	}
	return &Generator{rng: rng, teams: teams, skill: skill}, nil
}

// Match generates the six submissions for one qualification match.
func (g *Generator) Match(eventKey string, matchNumber int) []model.Submission {
	matchKey := fmt.Sprintf("%s_qm%d", eventKey, matchNumber)

	picked := make([]int, len(g.teams))
	copy(picked, g.teams)
	g.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	subs := make([]model.Submission, 0, 2*robotsPerAlliance)
	for i := 0; i < robotsPerAlliance; i++ {
		subs = append(subs, g.robot(eventKey, matchKey, picked[i], model.AllianceRed))
	}
	for i := robotsPerAlliance; i < 2*robotsPerAlliance; i++ {
		subs = append(subs, g.robot(eventKey, matchKey, picked[i], model.AllianceBlue))
	}
	return subs
}

// robot drives the capture state machine through one plausible match for a
// single team and packages the result as a submission.
func (g *Generator) robot(eventKey, matchKey string, team int, alliance model.Alliance) model.Submission {
	skill := g.skill[team]
	clock := newStepClock(time.Now().UTC(), time.Second)

	auto := tracker.New(model.PhaseAuto, tracker.WithClock(clock.Now))
	g.driveAuto(auto, skill)
	autoActions, autoToggles, _ := auto.Finish()

	teleop := tracker.New(model.PhaseTeleop, tracker.WithClock(clock.Now))
	g.driveTeleop(teleop, skill)
	teleopActions, teleopToggles, downtime := teleop.Finish()

	toggles := make(model.StatusToggles, len(autoToggles)+len(teleopToggles))
	for k, v := range autoToggles {
		toggles[k] = v
	}
	for k, v := range teleopToggles {
		toggles[k] = v
	}

	return model.Submission{
		ID:               uuid.NewString(),
		EventKey:         eventKey,
		MatchKey:         matchKey,
		TeamNumber:       team,
		Alliance:         alliance,
		ScoutName:        fmt.Sprintf("sim-%d", team),
		Auto:             autoActions,
		Teleop:           teleopActions,
		Toggles:          toggles,
		BreakdownSeconds: int(downtime.Seconds()),
		SubmittedAt:      time.Now().UTC(),
	}
}

func (g *Generator) driveAuto(t *tracker.Tracker, skill float64) {
	_ = t.Quick(model.ActionStart, startPositions[g.rng.Intn(len(startPositions))])
	t.SetToggle("auto.mobility", g.rng.Float64() < 0.4+skill*0.5)

	cycles := g.rng.Intn(2)
	if g.rng.Float64() < skill {
		cycles++
	}
	for i := 0; i < cycles; i++ {
		g.scoreCycle(t, skill, 1+g.rng.Intn(3))
	}
	if g.rng.Float64() < 0.05 {
		g.stuckInterval(t)
	}
}

func (g *Generator) driveTeleop(t *tracker.Tracker, skill float64) {
	cycles := 2 + g.rng.Intn(4) + int(skill*4)
	for i := 0; i < cycles; i++ {
		g.collectCycle(t, 2+g.rng.Intn(4))

		switch {
		case g.rng.Float64() < 0.2:
			g.passCycle(t, 1+g.rng.Intn(3))
		default:
			g.scoreCycle(t, skill, 1+g.rng.Intn(4))
		}

		if g.rng.Float64() < 0.1 {
			g.stuckInterval(t)
		}
		if g.rng.Float64() < 0.15 {
			_ = t.Quick(model.ActionDefense, "")
		}
		if g.rng.Float64() < 0.08 {
			_ = t.Quick(model.ActionSteal, "")
		}
		if g.rng.Float64() < 0.07 {
			_ = t.Quick(model.ActionFoul, "")
		}
	}

	// Rare mid-match breakdown; the open interval resolves a few ticks
	// later and lands in the downtime total.
	if g.rng.Float64() < 0.06 {
		_ = t.ToggleBrokenDown()
		for i := 0; i < 5+g.rng.Intn(20); i++ {
			_ = t.Downtime()
		}
		_ = t.ToggleBrokenDown()
	}

	if g.rng.Float64() < 0.3+skill*0.6 {
		g.climb(t, skill)
	}
}

func (g *Generator) scoreCycle(t *tracker.Tracker, skill float64, qty int) {
	if t.State() != tracker.StateIdle {
		return
	}
	if err := t.Begin(tracker.SelectScore); err != nil {
		return
	}
	_ = t.SelectTarget(scoreTargets[g.rng.Intn(len(scoreTargets))])
	for i := 0; i < qty; i++ {
		_ = t.AddQuantity(1)
	}
	// Scouts occasionally fat-finger and undo one tap.
	if g.rng.Float64() < 0.1 {
		_ = t.AddQuantity(1)
		t.UndoQuantity()
	}
	if g.rng.Float64() > skill*0.05 {
		_ = t.Confirm()
	} else {
		t.Cancel()
	}
}

func (g *Generator) passCycle(t *tracker.Tracker, qty int) {
	if t.State() != tracker.StateIdle {
		return
	}
	if err := t.Begin(tracker.SelectPass); err != nil {
		return
	}
	_ = t.SelectTarget("alliance_partner")
	for i := 0; i < qty; i++ {
		_ = t.AddQuantity(1)
	}
	_ = t.Confirm()
}

func (g *Generator) collectCycle(t *tracker.Tracker, qty int) {
	if t.State() != tracker.StateIdle {
		return
	}
	if err := t.Begin(tracker.SelectCollect); err != nil {
		return
	}
	_ = t.SelectTarget(collectSources[g.rng.Intn(len(collectSources))])
	for i := 0; i < qty; i++ {
		_ = t.AddQuantity(1)
	}
	_ = t.Confirm()
}

func (g *Generator) stuckInterval(t *tracker.Tracker) {
	if t.State() != tracker.StateIdle {
		return
	}
	element := "bump_" + startPositions[g.rng.Intn(len(startPositions))]
	if err := t.ToggleStuck(element); err != nil {
		return
	}
	// The step clock advances on every read, so the interval closes with a
	// non-zero duration.
	_ = t.ToggleStuck(element)
}

func (g *Generator) climb(t *tracker.Tracker, skill float64) {
	if t.State() != tracker.StateIdle {
		return
	}
	if err := t.BeginClimb(); err != nil {
		return
	}
	levels := []model.ClimbLevel{model.ClimbLevelL1, model.ClimbLevelL2, model.ClimbLevelL3}
	level := levels[g.rng.Intn(len(levels))]
	result := model.ClimbResultSuccess
	if g.rng.Float64() > skill {
		result = model.ClimbResultFailure
	}
	_ = t.SetClimbOutcome(level, result)
	_ = t.Confirm()
}
