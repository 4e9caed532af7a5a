package session

import (
	"errors"
	"sync"
	"time"

	"github.com/sadopc/wodtimer/internal/alert"
	"github.com/sadopc/wodtimer/internal/workout"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

func (f *fakeClock) NewTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *fakeClock) latest() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		return nil
	}
	return f.tickers[len(f.tickers)-1]
}

func (f *fakeClock) tickerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

type recordingAlerter struct {
	mu   sync.Mutex
	cues []alert.Cue
}

func (r *recordingAlerter) Emit(c alert.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *recordingAlerter) all() []alert.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]alert.Cue(nil), r.cues...)
}

func (r *recordingAlerter) count(c alert.Cue) int {
	n := 0
	for _, got := range r.all() {
		if got == c {
			n++
		}
	}
	return n
}

type memorySink struct {
	mu      sync.Mutex
	records []workout.Record
	err     error
}

func (m *memorySink) AppendWorkout(r workout.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

// gateSink blocks AppendWorkout until release is closed.
type gateSink struct {
	entered chan struct{}
	release chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateSink) AppendWorkout(workout.Record) error {
	close(g.entered)
	<-g.release
	return nil
}

var errDiskFull = errors.New("disk full")
