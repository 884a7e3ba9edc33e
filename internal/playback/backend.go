// Package playback expands step-sequenced patterns into timed performance
// events and fires them against a host transport clock. The engine performs
// no independent threading: it reacts to clock ticks and edit events arriving
// on the host's execution context.
package playback

import "sync"

// Backend is the audio engine boundary. Times are seconds on the transport's
// continuous timeline; the backend owns sample-accurate scheduling below
// that.
type Backend interface {
	TriggerNoteOnOff(noteName string, startTime, duration float64, velocity int)
	TriggerDrumHit(soundID string, startTime float64)
	ReleaseAllVoices()
}

// Clock is the host transport. The engine reads and sets position but never
// owns timing hardware.
type Clock interface {
	PositionInBeats() float64
	SetPositionInBeats(beats float64)
	BPM() float64
}

// ManualClock is a process-local transport used by tests and the CLI. The
// host advances it explicitly.
type ManualClock struct {
	mu    sync.Mutex
	beats float64
	bpm   float64
}

func NewManualClock(bpm float64) *ManualClock {
	return &ManualClock{bpm: bpm}
}

func (c *ManualClock) PositionInBeats() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beats
}

func (c *ManualClock) SetPositionInBeats(beats float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beats = beats
}

func (c *ManualClock) BPM() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

// Advance moves the clock forward by the given number of beats.
func (c *ManualClock) Advance(beats float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beats += beats
}
