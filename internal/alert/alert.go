// Package alert plays audio and haptic cues for timer events.
package alert

import (
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
)

// Cue names a timer event worth signalling.
type Cue string

const (
	CueBeep      Cue = "beep"
	CueCountdown Cue = "countdown"
	CueFinish    Cue = "finish"
	CueWork      Cue = "work"
	CueRest      Cue = "rest"
)

// Volume returns the playback volume for c in [0,1].
func Volume(c Cue) float64 {
	switch c {
	case CueFinish:
		return 1.0
	case CueWork, CueRest:
		return 0.9
	case CueCountdown:
		return 0.5
	}
	return 0.7
}

// Haptic is a vibration pattern.
type Haptic string

const (
	HapticSuccess   Haptic = "success"
	HapticHeavy     Haptic = "heavy"
	HapticMedium    Haptic = "medium"
	HapticLight     Haptic = "light"
	HapticSelection Haptic = "selection"
)

// Pattern returns the vibration pattern for c.
func Pattern(c Cue) Haptic {
	switch c {
	case CueFinish:
		return HapticSuccess
	case CueWork:
		return HapticHeavy
	case CueRest:
		return HapticMedium
	case CueCountdown:
		return HapticSelection
	}
	return HapticLight
}

// Alerter accepts cues without blocking the caller.
type Alerter interface {
	Emit(c Cue)
}

// SoundPlayer plays a cue at a volume.
type SoundPlayer interface {
	Play(c Cue, volume float64) error
}

// Vibrator runs a vibration pattern.
type Vibrator interface {
	Vibrate(p Haptic) error
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Emit(Cue) {}

// Dispatcher queues cues and plays them on a single worker goroutine.
// Emit never blocks: when the queue is full the cue is dropped.
type Dispatcher struct {
	sound    SoundPlayer
	vibrator Vibrator

	soundOn     atomic.Bool
	vibrationOn atomic.Bool

	queue     chan Cue
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher. Either backend may be nil.
func NewDispatcher(sound SoundPlayer, vibrator Vibrator, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 16
	}
	d := &Dispatcher{
		sound:    sound,
		vibrator: vibrator,
		queue:    make(chan Cue, queueSize),
		done:     make(chan struct{}),
	}
	d.soundOn.Store(true)
	d.vibrationOn.Store(true)
	go d.run()
	return d
}

// SetEnabled updates the sound and vibration switches.
func (d *Dispatcher) SetEnabled(sound, vibration bool) {
	d.soundOn.Store(sound)
	d.vibrationOn.Store(vibration)
}

// Enabled reports the current switches.
func (d *Dispatcher) Enabled() (sound, vibration bool) {
	return d.soundOn.Load(), d.vibrationOn.Load()
}

func (d *Dispatcher) Emit(c Cue) {
	defer func() {
		// Emit after Close sends on a closed channel.
		if r := recover(); r != nil {
			log.Printf("alert: emit %s after close", c)
		}
	}()
	select {
	case d.queue <- c:
	default:
		log.Printf("alert: queue full, dropping %s", c)
	}
}

// Close stops the worker after draining queued cues.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for c := range d.queue {
		d.play(c)
	}
}

func (d *Dispatcher) play(c Cue) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("alert: %s panicked: %v", c, r)
		}
	}()
	if d.vibrator != nil && d.vibrationOn.Load() {
		if err := d.vibrator.Vibrate(Pattern(c)); err != nil {
			log.Printf("alert: vibrate %s: %v", c, err)
		}
	}
	if d.sound != nil && d.soundOn.Load() {
		if err := d.sound.Play(c, Volume(c)); err != nil {
			log.Printf("alert: play %s: %v", c, err)
		}
	}
}

// Bell plays cues as terminal bells. Loud cues ring twice.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(c Cue, volume float64) error {
	rings := 1
	if volume >= 0.9 {
		rings = 2
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < rings; i++ {
		if _, err := io.WriteString(b.w, "\a"); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
	}
	return nil
}

// LogVibrator records vibration patterns in the log, for hosts without a
// vibration motor.
type LogVibrator struct{}

func (LogVibrator) Vibrate(p Haptic) error {
	log.Printf("alert: vibrate %s", p)
	return nil
}
