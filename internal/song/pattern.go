// Package song holds the step-grid data model: patterns of step-sequenced
// chords, their derived bass line, and boolean drum grids. Patterns are
// edited by whole-value replacement only; every mutator returns a new
// Pattern so history snapshots stay correct by structural comparison.
package song

import (
	"fmt"

	"github.com/google/uuid"
)

// TimeSignature selects the step grid of a bar. A step is a sixteenth note
// in both signatures: 16 steps per bar in 4/4, 12 in 3/4.
type TimeSignature int

const (
	TimeSig44 TimeSignature = iota
	TimeSig34
)

func (ts TimeSignature) StepsPerBar() int {
	if ts == TimeSig34 {
		return 12
	}
	return 16
}

func (ts TimeSignature) BeatsPerBar() int {
	if ts == TimeSig34 {
		return 3
	}
	return 4
}

func (ts TimeSignature) String() string {
	if ts == TimeSig34 {
		return "3/4"
	}
	return "4/4"
}

// ArpDirection orders the notes of an arpeggiated chord.
type ArpDirection int

const (
	ArpUp ArpDirection = iota
	ArpDown
	ArpUpDown
	ArpRandom
)

// Articulation is the manner a chord's notes are triggered. It is a closed
// sum type: the scheduler dispatches exhaustively over the three variants.
type Articulation interface {
	articulation()
}

// Block triggers every note simultaneously for the full chord duration.
type Block struct{}

// Strum triggers notes sequentially with a fixed inter-onset delay in
// seconds; all notes release together at the chord's end.
type Strum struct {
	Delay float64
}

// Arpeggio divides the chord duration into sub-steps of Rate beats. Gate is
// the audible fraction of each sub-step, in (0, 1].
type Arpeggio struct {
	Rate      float64
	Direction ArpDirection
	Gate      float64
}

func (Block) articulation()    {}
func (Strum) articulation()    {}
func (Arpeggio) articulation() {}

// DefaultStrumDelay is the inter-onset spacing of a strum, 40 ms.
const DefaultStrumDelay = 0.040

// SequenceChord is one chord event on the step grid. ID is stable across
// edits and joins selection, undo and playback highlighting.
type SequenceChord struct {
	ID           string
	ChordName    string
	Start        int // step index
	Duration     int // step count
	Octave       int
	Articulation Articulation // nil means Block
}

// SequenceBassNote is derived from the chord sequence, never hand-edited.
type SequenceBassNote struct {
	ID       string
	NoteName string
	Start    int
	Duration int
}

// DrumTrack maps a drum sound id to a fixed-length step grid.
type DrumTrack map[string][]bool

// DefaultKit lists the drum sounds a new pattern carries.
var DefaultKit = []string{"kick", "snare", "hat", "clap"}

// Pattern is the unit of arrangement. All contained events live and die
// with it.
type Pattern struct {
	ID           string
	Name         string
	Bars         int // 4 or 8
	TimeSig      TimeSignature
	Sequence     []SequenceChord
	BassSequence []SequenceBassNote
	Drums        DrumTrack
}

// NewPattern creates an empty 4-bar 4/4 pattern with the default kit.
func NewPattern(name string) Pattern {
	p := Pattern{
		ID:      uuid.New().String(),
		Name:    name,
		Bars:    4,
		TimeSig: TimeSig44,
		Drums:   DrumTrack{},
	}
	for _, sound := range DefaultKit {
		p.Drums[sound] = make([]bool, p.TotalSteps())
	}
	return p
}

// TotalSteps is the pattern length in sixteenth-note steps.
func (p Pattern) TotalSteps() int {
	return p.Bars * p.TimeSig.StepsPerBar()
}

// TotalBeats is the pattern length in beats; it is also the loop end.
func (p Pattern) TotalBeats() float64 {
	return float64(p.Bars * p.TimeSig.BeatsPerBar())
}

// Clone deep-copies the pattern so callers can hold snapshots safely.
func (p Pattern) Clone() Pattern {
	out := p
	out.Sequence = append([]SequenceChord(nil), p.Sequence...)
	out.BassSequence = append([]SequenceBassNote(nil), p.BassSequence...)
	out.Drums = DrumTrack{}
	for sound, grid := range p.Drums {
		out.Drums[sound] = append([]bool(nil), grid...)
	}
	return out
}

// Copy duplicates the pattern under a fresh identity; event ids are
// regenerated so the copy's events never alias the original's.
func (p Pattern) Copy(name string) Pattern {
	out := p.Clone()
	out.ID = uuid.New().String()
	out.Name = name
	for i := range out.Sequence {
		out.Sequence[i].ID = uuid.New().String()
	}
	if len(out.BassSequence) > 0 {
		out.BassSequence = DeriveBass(out)
	}
	return out
}

// AddChord appends a chord event, assigning an id if the caller did not.
func (p Pattern) AddChord(c SequenceChord) (Pattern, error) {
	if c.Start < 0 || c.Duration <= 0 || c.Start+c.Duration > p.TotalSteps() {
		return p, &InvalidRangeError{Start: c.Start, Duration: c.Duration, TotalSteps: p.TotalSteps()}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	out := p.Clone()
	out.Sequence = append(out.Sequence, c)
	return out, nil
}

// ChordUpdate is a partial update applied to a single chord event. Nil
// fields are left untouched.
type ChordUpdate struct {
	ChordName    *string
	Start        *int
	Duration     *int
	Octave       *int
	Articulation *Articulation
}

// UpdateChord replaces fields of the chord event with the given id.
func (p Pattern) UpdateChord(id string, upd ChordUpdate) (Pattern, error) {
	out := p.Clone()
	for i := range out.Sequence {
		if out.Sequence[i].ID != id {
			continue
		}
		c := out.Sequence[i]
		if upd.ChordName != nil {
			c.ChordName = *upd.ChordName
		}
		if upd.Start != nil {
			c.Start = *upd.Start
		}
		if upd.Duration != nil {
			c.Duration = *upd.Duration
		}
		if upd.Octave != nil {
			c.Octave = *upd.Octave
		}
		if upd.Articulation != nil {
			c.Articulation = *upd.Articulation
		}
		if c.Start < 0 || c.Duration <= 0 || c.Start+c.Duration > p.TotalSteps() {
			return p, &InvalidRangeError{Start: c.Start, Duration: c.Duration, TotalSteps: p.TotalSteps()}
		}
		out.Sequence[i] = c
		return out, nil
	}
	return p, fmt.Errorf("no chord event with id %s", id)
}

// RemoveChords drops the chord events with the given ids.
func (p Pattern) RemoveChords(ids []string) Pattern {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := p.Clone()
	kept := out.Sequence[:0]
	for _, c := range out.Sequence {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	out.Sequence = kept
	return out
}

// SetDrumCell toggles one cell of a drum sound's step grid.
func (p Pattern) SetDrumCell(sound string, step int, on bool) (Pattern, error) {
	if step < 0 || step >= p.TotalSteps() {
		return p, &InvalidRangeError{Start: step, Duration: 1, TotalSteps: p.TotalSteps()}
	}
	out := p.Clone()
	grid, ok := out.Drums[sound]
	if !ok {
		grid = make([]bool, p.TotalSteps())
	}
	grid[step] = on
	out.Drums[sound] = grid
	return out, nil
}

// SetBars resizes the pattern. Destructive and non-additive: events whose
// start falls beyond the new step count are dropped, events that overhang
// the new end are clamped. Callers are expected to confirm with the user
// before shrinking.
func (p Pattern) SetBars(bars int) (Pattern, error) {
	if bars != 4 && bars != 8 {
		return p, fmt.Errorf("unsupported bar count %d", bars)
	}
	out := p.Clone()
	out.Bars = bars
	out.resizeToGrid()
	return out, nil
}

// SetTimeSignature switches the step grid, with the same destructive
// semantics as SetBars.
func (p Pattern) SetTimeSignature(ts TimeSignature) (Pattern, error) {
	if ts != TimeSig44 && ts != TimeSig34 {
		return p, fmt.Errorf("unsupported time signature %v", ts)
	}
	out := p.Clone()
	out.TimeSig = ts
	out.resizeToGrid()
	return out, nil
}

// resizeToGrid re-fits all events to the current total step count.
func (p *Pattern) resizeToGrid() {
	total := p.TotalSteps()

	kept := p.Sequence[:0]
	for _, c := range p.Sequence {
		if c.Start >= total {
			continue
		}
		if c.Start+c.Duration > total {
			c.Duration = total - c.Start
		}
		kept = append(kept, c)
	}
	p.Sequence = kept

	for sound, grid := range p.Drums {
		resized := make([]bool, total)
		copy(resized, grid)
		p.Drums[sound] = resized
	}

	if len(p.BassSequence) > 0 {
		p.BassSequence = DeriveBass(*p)
	}
}
