package session

import (
	"time"

	"github.com/sadopc/wodtimer/internal/workout"
)

// Suspend records that the host process is about to be suspended. Only a
// running session is affected; its scheduler stops until
// ResumeFromBackground.
func (c *Controller) Suspend(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Status != workout.StatusRunning {
		return
	}
	c.suspendedAt = at
	c.stopTickerLocked()
}

// ResumeFromBackground applies the wall-clock time spent suspended in a
// single step.
//
// Count-down sessions do not replay phase transitions: if the suspension
// outlasted the current phase the session finishes outright.
func (c *Controller) ResumeFromBackground(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.suspendedAt.IsZero() {
		return
	}
	c.catchUpLocked(at)
	if c.state.Status == workout.StatusRunning {
		c.startTickerLocked()
	}
	c.publishLocked("")
}

// catchUpLocked applies a pending suspension up to at. It is a no-op when
// nothing is pending.
func (c *Controller) catchUpLocked(at time.Time) {
	if c.suspendedAt.IsZero() {
		return
	}
	away := int(at.Sub(c.suspendedAt) / time.Second)
	c.suspendedAt = time.Time{}
	if away < 0 {
		away = 0
	}
	c.resyncLocked(away)
}

func (c *Controller) resyncLocked(away int) {
	s := &c.state
	if s.Status != workout.StatusRunning {
		return
	}
	s.Elapsed += away
	if workout.IsCountUpMode(s.Mode) {
		s.Remaining += away
		return
	}
	s.Remaining -= away
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Status = workout.StatusFinished
	}
}

// suspended reports whether a suspension is pending resync.
func (c *Controller) suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.suspendedAt.IsZero()
}
