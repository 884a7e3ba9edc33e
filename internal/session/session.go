// Package session ties the editing surface together: a bank of patterns,
// undo history over the active one, and a playback scheduler that is rebuilt
// whenever an edit lands. Rebuilds triggered by bursts of edits are
// debounced so dragging a chord across the grid schedules once, not once
// per mouse move.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/Intronet/Cadence-sub001/internal/playback"
	"github.com/Intronet/Cadence-sub001/internal/song"
)

// ErrLastPattern is returned when deleting would leave the session empty.
var ErrLastPattern = errors.New("session: cannot delete the last pattern")

// ErrNoSuchPattern is returned for pattern ids the session does not hold.
var ErrNoSuchPattern = errors.New("session: no such pattern")

// DefaultRebuildDebounce coalesces scheduler rebuilds during edit bursts.
const DefaultRebuildDebounce = 60 * time.Millisecond

// Session is the single entry point a front end talks to. Methods are safe
// for concurrent use; debounced rebuilds run off a timer goroutine and only
// ever see pattern snapshots.
type Session struct {
	mu       sync.Mutex
	patterns []song.Pattern
	active   int

	history *song.History[song.Pattern]

	sched       *playback.Scheduler
	opts        playback.Options
	bassEnabled bool

	schedule func(func())
}

// New creates a session with one empty pattern and a scheduler bound to the
// given backend and clock. A non-positive debounce interval makes rebuilds
// synchronous, which tests rely on.
func New(backend playback.Backend, clock playback.Clock, cb playback.Callbacks, opts playback.Options, rebuildDebounce time.Duration) *Session {
	p := song.NewPattern("Pattern 1")
	s := &Session{
		patterns: []song.Pattern{p},
		history:  song.NewHistory(p),
		sched:    playback.New(backend, clock, cb),
		opts:     opts,
	}
	if rebuildDebounce > 0 {
		s.schedule = debounce.New(rebuildDebounce)
	} else {
		s.schedule = func(f func()) { f() }
	}
	s.requestRebuild()
	return s
}

// ActivePattern returns a snapshot of the pattern under edit.
func (s *Session) ActivePattern() song.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patterns[s.active].Clone()
}

// Patterns returns snapshots of every pattern in bank order.
func (s *Session) Patterns() []song.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]song.Pattern, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.Clone()
	}
	return out
}

// Scheduler exposes transport control (start, stop, seek, tick).
func (s *Session) Scheduler() *playback.Scheduler {
	return s.sched
}

// Options reports the current playback options.
func (s *Session) Options() playback.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetOptions replaces the playback options and reschedules.
func (s *Session) SetOptions(opts playback.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	s.requestRebuild()
}

// BassEnabled reports whether the derived bass line is active.
func (s *Session) BassEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bassEnabled
}

// SetBassEnabled toggles the derived bass line. Enabling derives a fresh
// line from the current chords; disabling clears it entirely.
func (s *Session) SetBassEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bassEnabled = on
	p := s.patterns[s.active].Clone()
	if on {
		p.BassSequence = song.DeriveBass(p)
	} else {
		p.BassSequence = nil
	}
	s.opts.BassEnabled = on
	s.commit(p)
}

// NewPattern appends an empty pattern and makes it active.
func (s *Session) NewPattern(name string) song.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := song.NewPattern(name)
	s.patterns = append(s.patterns, p)
	s.activate(len(s.patterns) - 1)
	return p.Clone()
}

// CopyPattern duplicates a pattern under a fresh identity and makes the
// copy active.
func (s *Session) CopyPattern(id, name string) (song.Pattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(id)
	if !ok {
		return song.Pattern{}, ErrNoSuchPattern
	}
	cp := s.patterns[i].Copy(name)
	s.patterns = append(s.patterns, cp)
	s.activate(len(s.patterns) - 1)
	return cp.Clone(), nil
}

// DeletePattern removes a pattern. The session always keeps at least one.
func (s *Session) DeletePattern(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.patterns) == 1 {
		return ErrLastPattern
	}
	i, ok := s.indexOf(id)
	if !ok {
		return ErrNoSuchPattern
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	next := s.active
	if i < s.active || s.active >= len(s.patterns) {
		next = s.active - 1
		if next < 0 {
			next = 0
		}
	}
	s.activate(next)
	return nil
}

// SelectPattern switches the active pattern. Undo history follows the
// active pattern and resets on switch.
func (s *Session) SelectPattern(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(id)
	if !ok {
		return ErrNoSuchPattern
	}
	s.activate(i)
	return nil
}

// AddChord places a chord event in the active pattern.
func (s *Session) AddChord(c song.SequenceChord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.patterns[s.active].AddChord(c)
	if err != nil {
		return err
	}
	s.commit(s.withDerivedBass(p))
	return nil
}

// UpdateChord applies a partial update to one chord event.
func (s *Session) UpdateChord(id string, upd song.ChordUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.patterns[s.active].UpdateChord(id, upd)
	if err != nil {
		return err
	}
	s.commit(s.withDerivedBass(p))
	return nil
}

// RemoveChords deletes chord events by id.
func (s *Session) RemoveChords(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.patterns[s.active].RemoveChords(ids)
	s.commit(s.withDerivedBass(p))
}

// SetDrumCell toggles one drum grid cell.
func (s *Session) SetDrumCell(sound string, step int, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.patterns[s.active].SetDrumCell(sound, step, on)
	if err != nil {
		return err
	}
	s.commit(p)
	return nil
}

// SetBars resizes the active pattern, destructively.
func (s *Session) SetBars(bars int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.patterns[s.active].SetBars(bars)
	if err != nil {
		return err
	}
	s.commit(p)
	return nil
}

// SetTimeSignature changes meter, destructively resizing the grid.
func (s *Session) SetTimeSignature(ts song.TimeSignature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.patterns[s.active].SetTimeSignature(ts)
	if err != nil {
		return err
	}
	s.commit(p)
	return nil
}

// Undo steps the active pattern back one snapshot.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.patterns[s.active] = p
	s.requestRebuild()
	return true
}

// Redo reapplies the most recently undone snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.patterns[s.active] = p
	s.requestRebuild()
	return true
}

func (s *Session) indexOf(id string) (int, bool) {
	for i, p := range s.patterns {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// withDerivedBass regenerates the bass line after a chord edit when the
// bass track is on.
func (s *Session) withDerivedBass(p song.Pattern) song.Pattern {
	if s.bassEnabled {
		p.BassSequence = song.DeriveBass(p)
	}
	return p
}

// commit installs an edited snapshot, records it and reschedules.
func (s *Session) commit(p song.Pattern) {
	s.patterns[s.active] = p
	s.history.Push(p)
	s.requestRebuild()
}

// activate switches the active slot and resets history to it.
func (s *Session) activate(i int) {
	s.active = i
	s.history = song.NewHistory(s.patterns[i])
	s.requestRebuild()
}

// requestRebuild schedules a rebuild against a snapshot taken now, so the
// debounce timer never races live edits. Expansion errors surface through
// the scheduler's OnEventError callback.
func (s *Session) requestRebuild() {
	p := s.patterns[s.active].Clone()
	opts := s.opts
	s.schedule(func() {
		_ = s.sched.Rebuild(p, opts)
	})
}
