package playback

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Intronet/Cadence-sub001/internal/song"
)

// ErrSchedulingConflict means a trigger-set activation raced a rebuild that
// had not finished disposing the previous set. Correct sequencing never
// produces it; it signals a programming error, not a user condition.
var ErrSchedulingConflict = errors.New("scheduler: previous trigger set not yet disposed")

// State is the scheduler lifecycle per pattern change.
type State int

const (
	Idle State = iota
	Scheduled
)

// Callbacks deliver UI feedback timed to trigger onsets. They are purely
// observational and never affect audio. Active callbacks clear at ~95% of
// the trigger's duration.
type Callbacks struct {
	OnChordActive func(id string, active bool)
	OnBassActive  func(id string, active bool)
	OnDrumStep    func(step int)
	OnEventError  func(eventID string, err error)
}

// uiClear is a pending "deactivate" notification on the elapsed timeline.
type uiClear struct {
	kind EventKind
	id   string
	at   float64
}

// Scheduler expands a pattern into a trigger set and fires it against the
// transport clock. Swapping trigger sets is atomic from the transport's
// point of view: a tick never observes a partially disposed set.
type Scheduler struct {
	backend Backend
	clock   Clock
	cb      Callbacks

	mu          sync.Mutex
	state       State
	rebuilding  bool
	playing     bool
	notes       []NoteEvent
	drums       []DrumEvent
	opts        Options
	loopSeconds float64
	secPerBeat  float64

	lastLoopSec float64 // position within the loop at the previous tick
	elapsed     float64 // continuous seconds since playback start
	clears      []uiClear
	rng         *rand.Rand
}

// New creates a scheduler bound to a backend and transport clock.
func New(backend Backend, clock Clock, cb Callbacks) *Scheduler {
	return &Scheduler{
		backend: backend,
		clock:   clock,
		cb:      cb,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rebuild disposes any previously scheduled trigger set and expands the
// pattern into a new one. It must be called whenever the pattern, voicing
// mode or enabled tracks change.
func (s *Scheduler) Rebuild(p song.Pattern, opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rebuilding {
		return ErrSchedulingConflict
	}
	s.rebuilding = true

	// Dispose first: from here until the new set is installed no trigger
	// exists, and the mutex keeps ticks out entirely.
	s.notes = nil
	s.drums = nil
	s.state = Idle

	bpm := s.clock.BPM()
	notes, drums, errs := ExpandPattern(p, bpm, opts, s.rng)
	for _, ee := range errs {
		if s.cb.OnEventError != nil {
			s.cb.OnEventError(ee.EventID, ee.Err)
		}
	}

	s.notes = notes
	s.drums = drums
	s.opts = opts
	s.secPerBeat = 60.0 / bpm
	s.loopSeconds = p.TotalBeats() * s.secPerBeat
	s.lastLoopSec = s.loopPos()
	s.state = Scheduled
	s.rebuilding = false
	return nil
}

// Start begins firing triggers from the current transport position.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
	s.lastLoopSec = s.loopPos()
}

// Stop halts playback and deterministically silences every sounding voice
// across chord, bass and drum channels.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.backend.ReleaseAllVoices()
	s.flushClears()
}

// Seek moves the transport. Seeking never requires a rebuild: the trigger
// set is position-independent.
func (s *Scheduler) Seek(beats float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.SetPositionInBeats(beats)
	s.lastLoopSec = s.loopPos()
	s.flushClears()
}

// Tick fires every trigger whose onset falls between the previous tick
// (inclusive) and the current transport position (exclusive), wrapping at
// the loop boundary.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || s.state != Scheduled || s.loopSeconds <= 0 {
		return
	}

	now := s.loopPos()
	adv := now - s.lastLoopSec
	if adv < 0 {
		adv += s.loopSeconds
	}

	if adv > 0 {
		if now >= s.lastLoopSec {
			s.fireWindow(s.lastLoopSec, now, 0)
		} else {
			// wrapped past the loop end: finish this pass, then the next
			s.fireWindow(s.lastLoopSec, s.loopSeconds, 0)
			s.fireWindow(0, now, s.loopSeconds-s.lastLoopSec)
		}
	}

	s.elapsed += adv
	s.lastLoopSec = now
	s.sweepClears()
}

// fireWindow fires triggers with onset in [from, to). baseOffset is the
// elapsed-time distance from the previous tick to loop position zero when
// the window lies in the following pass.
func (s *Scheduler) fireWindow(from, to, baseOffset float64) {
	for _, ev := range s.notes {
		if ev.At < from || ev.At >= to {
			continue
		}
		at := s.elapsed + baseOffset + (ev.At - from)
		start := at + jitterTime(s.rng, s.opts.HumanizeTiming)
		vel := jitterVelocity(s.rng, ev.Velocity, s.opts.HumanizeDynamics)
		s.backend.TriggerNoteOnOff(ev.Note, start, ev.Duration, vel)
		s.notifyActive(ev, true)
		s.clears = append(s.clears, uiClear{kind: ev.Kind, id: ev.EventID, at: at + ev.Duration*0.95})
	}
	for _, d := range s.drums {
		if d.At < from || d.At >= to {
			continue
		}
		at := s.elapsed + baseOffset + (d.At - from)
		s.backend.TriggerDrumHit(d.Sound, at)
		if s.cb.OnDrumStep != nil {
			s.cb.OnDrumStep(d.Step)
		}
	}
}

func (s *Scheduler) notifyActive(ev NoteEvent, active bool) {
	switch ev.Kind {
	case KindChord:
		if s.cb.OnChordActive != nil {
			s.cb.OnChordActive(ev.EventID, active)
		}
	case KindBass:
		if s.cb.OnBassActive != nil {
			s.cb.OnBassActive(ev.EventID, active)
		}
	}
}

// sweepClears delivers the deactivation half of UI feedback.
func (s *Scheduler) sweepClears() {
	kept := s.clears[:0]
	for _, c := range s.clears {
		if c.at > s.elapsed {
			kept = append(kept, c)
			continue
		}
		s.deliverClear(c)
	}
	s.clears = kept
}

// flushClears deactivates everything immediately (stop/seek).
func (s *Scheduler) flushClears() {
	for _, c := range s.clears {
		s.deliverClear(c)
	}
	s.clears = nil
}

func (s *Scheduler) deliverClear(c uiClear) {
	switch c.kind {
	case KindChord:
		if s.cb.OnChordActive != nil {
			s.cb.OnChordActive(c.id, false)
		}
	case KindBass:
		if s.cb.OnBassActive != nil {
			s.cb.OnBassActive(c.id, false)
		}
	}
}

// loopPos is the transport position folded into the loop, in seconds.
func (s *Scheduler) loopPos() float64 {
	if s.loopSeconds <= 0 {
		return 0
	}
	pos := s.clock.PositionInBeats() * s.secPerBeat
	return math.Mod(math.Mod(pos, s.loopSeconds)+s.loopSeconds, s.loopSeconds)
}
