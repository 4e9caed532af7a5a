// Package session runs a live workout timer: a 1 Hz tick loop driving the
// phase transitions computed by package workout, alert cues, resync after
// the process was suspended, and the hand-off of finished workouts.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/wodtimer/internal/alert"
	"github.com/sadopc/wodtimer/internal/workout"
)

// RecordSink stores finished workouts.
type RecordSink interface {
	AppendWorkout(r workout.Record) error
}

// Event is published after every tick and every status change.
type Event struct {
	State workout.State
	Cue   alert.Cue // empty when no cue was emitted
	At    time.Time
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option { return func(ctl *Controller) { ctl.clock = c } }

func WithAlerter(a alert.Alerter) Option { return func(ctl *Controller) { ctl.alerter = a } }

func WithSink(s RecordSink) Option { return func(ctl *Controller) { ctl.sink = s } }

// WithTickInterval overrides the one-second tick. Each tick still counts
// as one second of workout time.
func WithTickInterval(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.interval = d
		}
	}
}

func WithIDFunc(f func() string) Option { return func(ctl *Controller) { ctl.newID = f } }

// Controller owns the state of one timer session. All methods are safe
// for concurrent use; ticks and user actions are serialized by mu.
type Controller struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	alerter  alert.Alerter
	sink     RecordSink
	newID    func() string

	config workout.Config
	state  workout.State

	// gen identifies the current running stint. Ticks carrying an older
	// generation are dropped.
	gen    uint64
	stopCh chan struct{}

	suspendedAt time.Time
	record      *workout.Record
	subs        []chan Event
	closed      bool
}

// New creates an idle session for cfg. The config is fixed for the
// session's lifetime.
func New(cfg workout.Config, opts ...Option) *Controller {
	c := &Controller{
		clock:    realClock{},
		interval: time.Second,
		alerter:  alert.Nop{},
		newID:    uuid.NewString,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = workout.NewState(cfg)
	return c
}

// Config returns the session config.
func (c *Controller) Config() workout.Config {
	return c.config
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() workout.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers an event channel. Events are dropped when the
// channel is full. The channel is closed by Close.
func (c *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch
	}
	c.subs = append(c.subs, ch)
	return ch
}

// Start moves an idle session to running.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Status != workout.StatusIdle {
		return
	}
	c.state.Status = workout.StatusRunning
	c.startTickerLocked()
	c.cueLocked(alert.CueBeep)
}

// Pause moves a running session to paused.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Status != workout.StatusRunning {
		return
	}
	c.catchUpLocked(c.clock.Now())
	c.stopTickerLocked()
	if c.state.Status == workout.StatusRunning {
		c.state.Status = workout.StatusPaused
	}
	c.publishLocked("")
}

// Resume moves a paused session back to running.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Status != workout.StatusPaused {
		return
	}
	c.state.Status = workout.StatusRunning
	c.startTickerLocked()
	c.publishLocked("")
}

// Toggle starts, pauses or resumes depending on the current status.
func (c *Controller) Toggle() {
	switch c.Snapshot().Status {
	case workout.StatusIdle:
		c.Start()
	case workout.StatusRunning:
		c.Pause()
	case workout.StatusPaused:
		c.Resume()
	}
}

// Reset returns the session to the state New produced.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTickerLocked()
	c.state = workout.NewState(c.config)
	c.suspendedAt = time.Time{}
	c.record = nil
	c.publishLocked("")
}

// IncrementRound counts one more AMRAP round. It only applies while an
// AMRAP session is running and has no upper bound.
func (c *Controller) IncrementRound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Mode != workout.ModeAMRAP || c.state.Status != workout.StatusRunning {
		return false
	}
	c.state.CurrentRound++
	c.publishLocked("")
	return true
}

// Finish ends the session and hands its record to the sink. The record is
// created once; later calls return the same record without storing it
// again. A sink failure is logged and does not affect the session.
//
// The sink runs after the lock is released.
func (c *Controller) Finish() workout.Record {
	c.mu.Lock()
	if c.record != nil {
		rec := *c.record
		c.mu.Unlock()
		return rec
	}
	c.catchUpLocked(c.clock.Now())
	if c.state.Status != workout.StatusFinished {
		c.state.Status = workout.StatusFinished
	}
	c.stopTickerLocked()
	rec := workout.Record{
		ID:              c.newID(),
		Date:            c.clock.Now().UTC(),
		Mode:            c.config.Mode,
		Config:          c.config,
		Duration:        c.state.Elapsed,
		RoundsCompleted: c.state.CurrentRound,
	}
	c.record = &rec
	c.publishLocked("")
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		if err := sink.AppendWorkout(rec); err != nil {
			log.Printf("session: save workout %s: %v", rec.ID, err)
		}
	}
	return rec
}

// Record returns the record created by Finish, if any.
func (c *Controller) Record() (workout.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return workout.Record{}, false
	}
	return *c.record, true
}

// Tick advances a running session by one second. The scheduler calls it
// once per interval; tests may call it directly.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.tickLocked()
}

// Close stops the scheduler and closes subscriber channels. The session
// ignores every call afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTickerLocked()
	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

func (c *Controller) tickLocked() {
	s := &c.state
	if s.Status != workout.StatusRunning {
		return
	}

	if workout.IsCountUpMode(s.Mode) {
		s.Remaining++
		s.Elapsed++
		if limit := c.config.CapSeconds(); limit > 0 && s.Remaining >= limit {
			c.finishLocked()
			return
		}
		c.publishLocked("")
		return
	}

	var cue alert.Cue
	if s.Remaining == 2 || s.Remaining == 3 {
		cue = alert.CueCountdown
	}

	// The phase ends on the tick that sees one second left, so 00:00 is
	// never displayed.
	if s.Remaining > 1 {
		s.Remaining--
		s.Elapsed++
		c.cueLocked(cue)
		return
	}

	patch := workout.HandlePhaseEnd(c.config, *s)
	if patch.Finished() {
		c.finishLocked()
		return
	}
	wasWork := s.IsWorkPhase
	*s = patch.Apply(*s)
	switch {
	case wasWork == s.IsWorkPhase:
		cue = alert.CueBeep
	case s.IsWorkPhase:
		cue = alert.CueWork
	default:
		cue = alert.CueRest
	}
	c.cueLocked(cue)
}

func (c *Controller) finishLocked() {
	c.state.Status = workout.StatusFinished
	c.stopTickerLocked()
	c.cueLocked(alert.CueFinish)
}

// cueLocked emits cue (if any) and publishes the state.
func (c *Controller) cueLocked(cue alert.Cue) {
	if cue != "" {
		c.alerter.Emit(cue)
	}
	c.publishLocked(cue)
}

func (c *Controller) publishLocked(cue alert.Cue) {
	ev := Event{State: c.state, Cue: cue, At: c.clock.Now()}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()
	stop := make(chan struct{})
	c.stopCh = stop
	go c.loop(c.gen, c.clock.NewTicker(c.interval), stop)
}

func (c *Controller) stopTickerLocked() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
	c.gen++
}

func (c *Controller) loop(gen uint64, t Ticker, stop <-chan struct{}) {
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			c.mu.Lock()
			if c.gen == gen && !c.closed {
				c.tickLocked()
			}
			c.mu.Unlock()
		}
	}
}
