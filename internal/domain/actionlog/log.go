// Package actionlog provides the append-only, undo-capable sequence of
// committed actions for one match phase. The log is always contiguous,
// commit-ordered, and duplicate-free; it lives only as long as the phase
// and is never persisted.
package actionlog

import (
	"time"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// Log is an ordered sequence of committed actions. Not safe for concurrent
// use; a log is scoped to exactly one in-progress phase on one device.
type Log struct {
	actions    []model.Action
	lastCommit time.Time
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Append adds an action at the tail. Commit timestamps are clamped so they
// never decrease within one log, even if the device clock steps backwards.
func (l *Log) Append(a model.Action) {
	if a.CommittedAt.Before(l.lastCommit) {
		a.CommittedAt = l.lastCommit
	}
	l.lastCommit = a.CommittedAt
	l.actions = append(l.actions, a)
}

// UndoLast removes and returns the most recent entry. It is a no-op on an
// empty log and never errors.
func (l *Log) UndoLast() (model.Action, bool) {
	if len(l.actions) == 0 {
		return model.Action{}, false
	}
	last := l.actions[len(l.actions)-1]
	l.actions = l.actions[:len(l.actions)-1]
	return last, true
}

// Last returns the most recent entry without removing it.
func (l *Log) Last() (model.Action, bool) {
	if len(l.actions) == 0 {
		return model.Action{}, false
	}
	return l.actions[len(l.actions)-1], true
}

// Len returns the number of committed actions.
func (l *Log) Len() int {
	return len(l.actions)
}

// Actions returns a copy of the log in commit order.
func (l *Log) Actions() []model.Action {
	out := make([]model.Action, len(l.actions))
	copy(out, l.actions)
	return out
}
