// Package tracker implements the interactive capture state machine that
// turns raw scout taps into committed actions: selection, multi-step
// confirmation with granular undo, stuck-interval tracking, and the
// broken-down toggle.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelrobotics/matchbook/internal/domain/actionlog"
	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// State enumerates the tracker's interactive states. BrokenDown is
// orthogonal in the model but reported as a state because it blocks every
// other interaction.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateConfirming
	StateStuckOpen
	StateBrokenDown
)

// String implements fmt.Stringer for log and test output.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateConfirming:
		return "confirming"
	case StateStuckOpen:
		return "stuck_open"
	case StateBrokenDown:
		return "broken_down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SelectKind is an action category that needs a follow-up target tap.
type SelectKind string

const (
	SelectScore   SelectKind = "score"
	SelectPass    SelectKind = "pass"
	SelectCollect SelectKind = "collect"
)

// Pending is a read-only view of the draft action awaiting confirmation.
type Pending struct {
	Kind        SelectKind
	Position    string
	Quantity    int
	IsClimb     bool
	ClimbLevel  model.ClimbLevel
	ClimbResult model.ClimbResult
}

// pendingAction is the internal draft; the quantity history stack enables
// granular undo before commit.
type pendingAction struct {
	kind        SelectKind
	position    string
	quantity    int
	history     []int
	isClimb     bool
	climbLevel  model.ClimbLevel
	climbResult model.ClimbResult
}

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithClock sets the time source. Tests inject a fake clock; commit
// timestamps are still clamped non-decreasing by the log.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// Tracker is the per-phase capture state machine. Every transition runs
// synchronously in response to one discrete interaction; nothing blocks.
// Not safe for concurrent use; one tracker serves one phase on one device.
type Tracker struct {
	phase model.Phase
	log   *actionlog.Log
	now   func() time.Time

	state   State
	kind    SelectKind
	pending *pendingAction

	stuckElement string
	stuckSince   time.Time

	brokenDown  bool
	brokenSince time.Time
	downtime    time.Duration

	toggles model.StatusToggles
}

// New creates a tracker for one match phase with an empty log.
func New(phase model.Phase, opts ...Option) *Tracker {
	t := &Tracker{
		phase:   phase,
		log:     actionlog.New(),
		now:     time.Now,
		state:   StateIdle,
		toggles: make(model.StatusToggles),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current interactive state.
func (t *Tracker) State() State {
	if t.brokenDown {
		return StateBrokenDown
	}
	return t.state
}

// Pending returns the draft action, if one is awaiting confirmation.
func (t *Tracker) Pending() (Pending, bool) {
	if t.pending == nil {
		return Pending{}, false
	}
	return Pending{
		Kind:        t.pending.kind,
		Position:    t.pending.position,
		Quantity:    t.pending.quantity,
		IsClimb:     t.pending.isClimb,
		ClimbLevel:  t.pending.climbLevel,
		ClimbResult: t.pending.climbResult,
	}, true
}

// Log exposes the committed action log for this phase.
func (t *Tracker) Log() *actionlog.Log {
	return t.log
}

// Begin starts a target selection for a quantity-based action category.
func (t *Tracker) Begin(kind SelectKind) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	switch kind {
	case SelectScore, SelectPass, SelectCollect:
	default:
		return ErrUnknownKind
	}
	if t.state != StateIdle {
		return ErrBusy
	}
	t.state = StateSelecting
	t.kind = kind
	return nil
}

// SelectTarget completes a selection by naming the tapped field element,
// creating a draft action with zero accumulated quantity.
func (t *Tracker) SelectTarget(position string) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.state != StateSelecting {
		return ErrNoSelection
	}
	t.openPending(&pendingAction{kind: t.kind, position: position})
	return nil
}

// BeginClimb creates a climb draft directly; confirm stays unavailable
// until an outcome is set.
func (t *Tracker) BeginClimb() error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.state != StateIdle {
		return ErrBusy
	}
	t.openPending(&pendingAction{isClimb: true})
	return nil
}

// SetClimbOutcome records the attempted level and its result on the climb
// draft.
func (t *Tracker) SetClimbOutcome(level model.ClimbLevel, result model.ClimbResult) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.pending == nil {
		return ErrNoPending
	}
	if !t.pending.isClimb {
		return ErrNotClimb
	}
	t.pending.climbLevel = level
	t.pending.climbResult = result
	return nil
}

// AddQuantity accumulates one quantity tap onto the draft.
func (t *Tracker) AddQuantity(delta int) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.pending == nil {
		return ErrNoPending
	}
	if t.pending.isClimb {
		return ErrNotClimb
	}
	if delta <= 0 {
		return ErrInvalidDelta
	}
	t.pending.history = append(t.pending.history, delta)
	t.pending.quantity += delta
	return nil
}

// UndoQuantity pops the most recent quantity tap. No-op when the history
// stack is empty.
func (t *Tracker) UndoQuantity() {
	if t.brokenDown || t.pending == nil || len(t.pending.history) == 0 {
		return
	}
	last := t.pending.history[len(t.pending.history)-1]
	t.pending.history = t.pending.history[:len(t.pending.history)-1]
	t.pending.quantity -= last
}

// CanConfirm reports whether the draft is complete enough to commit.
func (t *Tracker) CanConfirm() bool {
	if t.pending == nil {
		return false
	}
	if t.pending.isClimb {
		return t.pending.climbLevel != model.ClimbLevelNone && t.pending.climbResult != model.ClimbResultUnset
	}
	return t.pending.quantity > 0
}

// Confirm finalizes the draft and appends it to the log. Scored and passed
// fuel leaves the robot, so those deltas commit negative; collected fuel
// commits positive.
func (t *Tracker) Confirm() error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.pending == nil {
		return ErrNoPending
	}
	if !t.CanConfirm() {
		return ErrNotConfirmable
	}

	p := t.pending
	a := model.Action{
		ID:          uuid.NewString(),
		Phase:       t.phase,
		Position:    p.position,
		CommittedAt: t.now(),
	}
	if p.isClimb {
		a.Type = model.ActionClimb
		a.ClimbLevel = p.climbLevel
		a.ClimbResult = p.climbResult
	} else {
		switch p.kind {
		case SelectScore:
			a.Type = model.ActionScore
			a.FuelDelta = -p.quantity
		case SelectPass:
			a.Type = model.ActionPass
			a.FuelDelta = -p.quantity
		case SelectCollect:
			a.Type = model.ActionCollect
			a.FuelDelta = p.quantity
		default:
			return ErrUnknownKind
		}
		a.AmountLabel = fmt.Sprintf("x%d", p.quantity)
	}
	t.log.Append(a)
	t.pending = nil
	t.state = StateIdle
	return nil
}

// Cancel discards any selection or draft entirely; nothing is appended.
// No-op when idle.
func (t *Tracker) Cancel() {
	if t.brokenDown {
		return
	}
	if t.state == StateSelecting || t.state == StateConfirming {
		t.pending = nil
		t.state = StateIdle
	}
}

// Quick commits a zero-argument action immediately, bypassing confirmation.
// Used for defense, steal, foul, and start-position taps.
func (t *Tracker) Quick(typ model.ActionType, position string) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	switch typ {
	case model.ActionDefense, model.ActionSteal, model.ActionFoul, model.ActionStart:
	default:
		return ErrUnknownKind
	}
	t.log.Append(model.Action{
		ID:          uuid.NewString(),
		Type:        typ,
		Phase:       t.phase,
		Position:    position,
		CommittedAt: t.now(),
	})
	return nil
}

// ToggleStuck opens a stuck interval for the field element, or closes the
// open one and commits a traversal action annotated with the duration.
// A stuck interval is mutually exclusive with a selection or draft.
func (t *Tracker) ToggleStuck(elementKey string) error {
	if t.brokenDown {
		return ErrBrokenDown
	}
	if t.state == StateStuckOpen {
		if elementKey != t.stuckElement {
			return ErrBusy
		}
		d := t.now().Sub(t.stuckSince)
		if d < 0 {
			d = 0
		}
		t.log.Append(model.Action{
			ID:          uuid.NewString(),
			Type:        model.ActionTraversal,
			Phase:       t.phase,
			Position:    elementKey,
			Duration:    d,
			CommittedAt: t.now(),
		})
		t.stuckElement = ""
		t.state = StateIdle
		return nil
	}
	if t.state != StateIdle {
		return ErrBusy
	}
	t.stuckElement = elementKey
	t.stuckSince = t.now()
	t.state = StateStuckOpen
	return nil
}

// ToggleBrokenDown flips the broken-down interval. While active, every
// other interaction is blocked; resolving it accumulates downtime into the
// phase metadata.
func (t *Tracker) ToggleBrokenDown() error {
	if t.brokenDown {
		d := t.now().Sub(t.brokenSince)
		if d > 0 {
			t.downtime += d
		}
		t.brokenDown = false
		return nil
	}
	if t.state != StateIdle {
		return ErrBusy
	}
	t.brokenDown = true
	t.brokenSince = t.now()
	return nil
}

// SetToggle records a raw status toggle (e.g. "auto.mobility") collected
// outside the action stream.
func (t *Tracker) SetToggle(key string, value bool) {
	t.toggles[key] = value
}

// UndoLast removes the most recently committed action. Blocked while
// broken down; no-op on an empty log.
func (t *Tracker) UndoLast() (model.Action, bool) {
	if t.brokenDown {
		return model.Action{}, false
	}
	return t.log.UndoLast()
}

// Downtime returns the broken-down time accumulated so far, including any
// interval still open.
func (t *Tracker) Downtime() time.Duration {
	d := t.downtime
	if t.brokenDown {
		if open := t.now().Sub(t.brokenSince); open > 0 {
			d += open
		}
	}
	return d
}

// Finish closes any open intervals, returns the committed actions, the raw
// toggles, and total downtime, then resets the tracker for reuse. An open
// stuck interval is closed as a traversal ending at phase end.
func (t *Tracker) Finish() ([]model.Action, model.StatusToggles, time.Duration) {
	if t.state == StateStuckOpen {
		_ = t.ToggleStuck(t.stuckElement)
	}
	if t.brokenDown {
		_ = t.ToggleBrokenDown()
	}
	actions := t.log.Actions()
	toggles := t.toggles
	downtime := t.downtime

	t.log = actionlog.New()
	t.pending = nil
	t.state = StateIdle
	t.downtime = 0
	t.toggles = make(model.StatusToggles)
	return actions, toggles, downtime
}

// openPending installs a draft. Two simultaneously open drafts indicate a
// programming defect, so this fails loudly.
func (t *Tracker) openPending(p *pendingAction) {
	if t.pending != nil {
		panic("tracker: pending action already active")
	}
	t.pending = p
	t.state = StateConfirming
}
