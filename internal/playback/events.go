package playback

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Intronet/Cadence-sub001/internal/song"
	"github.com/Intronet/Cadence-sub001/internal/theory"
)

// EventKind distinguishes chord voices from the derived bass line.
type EventKind int

const (
	KindChord EventKind = iota
	KindBass
)

// NoteEvent is one note trigger within a single loop pass. At and Duration
// are seconds from the loop start; humanize jitter is not applied here, it
// is drawn per note per pass at fire time.
type NoteEvent struct {
	EventID  string
	Kind     EventKind
	Note     string
	At       float64
	Duration float64
	Velocity int
}

// DrumEvent is one drum hit within a single loop pass.
type DrumEvent struct {
	Sound string
	Step  int
	At    float64
}

// Options controls how a pattern is expanded and played.
type Options struct {
	// AutoVoiceLead re-voices the chord sequence with the greedy
	// voice-leading search before rendering. Off by default.
	AutoVoiceLead bool

	// HumanizeTiming and HumanizeDynamics are 0..1 amounts applied
	// independently per note trigger at fire time.
	HumanizeTiming   float64
	HumanizeDynamics float64

	ChordsEnabled bool
	BassEnabled   bool
	DrumsEnabled  bool

	// StrumDelay is the inter-onset spacing for strummed chords in seconds.
	// Zero means song.DefaultStrumDelay.
	StrumDelay float64
}

// EventError ties an expansion failure to the chord event that caused it.
type EventError struct {
	EventID string
	Err     error
}

func (e EventError) Error() string {
	return e.Err.Error()
}

func (e EventError) Unwrap() error {
	return e.Err
}

// ExpandPattern turns a pattern into one loop pass of concrete triggers.
// A malformed chord name degrades only that event: it is skipped and
// reported, the rest of the pattern still plays. Random arpeggio orders are
// drawn from rng once per chord instance, so one trigger set is stable per
// play-through but varies across rebuilds.
func ExpandPattern(p song.Pattern, bpm float64, opts Options, rng *rand.Rand) ([]NoteEvent, []DrumEvent, []EventError) {
	secPerBeat := 60.0 / bpm
	secPerStep := secPerBeat / 4 // a step is a sixteenth note

	var notes []NoteEvent
	var errs []EventError

	if opts.ChordsEnabled {
		seq := append([]song.SequenceChord(nil), p.Sequence...)
		sort.SliceStable(seq, func(i, j int) bool { return seq[i].Start < seq[j].Start })

		if opts.AutoVoiceLead {
			names := make([]string, len(seq))
			for i, c := range seq {
				names[i] = c.ChordName
			}
			voiced := theory.HumanizeProgression(names)
			for i := range seq {
				seq[i].ChordName = voiced[i]
			}
		}

		for _, ch := range seq {
			evs, err := expandChord(ch, secPerStep, secPerBeat, opts.StrumDelay, rng)
			if err != nil {
				errs = append(errs, EventError{EventID: ch.ID, Err: err})
				continue
			}
			notes = append(notes, evs...)
		}
	}

	if opts.BassEnabled {
		for _, b := range p.BassSequence {
			notes = append(notes, NoteEvent{
				EventID:  b.ID,
				Kind:     KindBass,
				Note:     b.NoteName,
				At:       float64(b.Start) * secPerStep,
				Duration: float64(b.Duration) * secPerStep,
				Velocity: baseVelocity,
			})
		}
	}

	var drums []DrumEvent
	if opts.DrumsEnabled {
		for sound, grid := range p.Drums {
			for step, on := range grid {
				if on {
					drums = append(drums, DrumEvent{
						Sound: sound,
						Step:  step,
						At:    float64(step) * secPerStep,
					})
				}
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].At < notes[j].At })
	sort.SliceStable(drums, func(i, j int) bool {
		if drums[i].At != drums[j].At {
			return drums[i].At < drums[j].At
		}
		return drums[i].Sound < drums[j].Sound
	})
	return notes, drums, errs
}

// expandChord dispatches on the chord's articulation. The switch is
// exhaustive over the closed Articulation sum.
func expandChord(ch song.SequenceChord, secPerStep, secPerBeat, strumDelay float64, rng *rand.Rand) ([]NoteEvent, error) {
	parsed, err := theory.Parse(ch.ChordName)
	if err != nil {
		return nil, err
	}
	noteNames := theory.RenderNames(parsed, ch.Octave)

	start := float64(ch.Start) * secPerStep
	dur := float64(ch.Duration) * secPerStep

	var out []NoteEvent
	emit := func(note string, at, d float64) {
		out = append(out, NoteEvent{
			EventID:  ch.ID,
			Kind:     KindChord,
			Note:     note,
			At:       at,
			Duration: d,
			Velocity: baseVelocity,
		})
	}

	switch art := ch.Articulation.(type) {
	case nil, song.Block:
		for _, n := range noteNames {
			emit(n, start, dur)
		}

	case song.Strum:
		delay := art.Delay
		if delay <= 0 {
			delay = strumDelay
		}
		if delay <= 0 {
			delay = song.DefaultStrumDelay
		}
		// later notes sustain less so the whole chord releases in unison
		for i, n := range noteNames {
			sustain := dur - float64(i)*delay
			if sustain <= 0 {
				continue
			}
			emit(n, start+float64(i)*delay, sustain)
		}

	case song.Arpeggio:
		rate := art.Rate * secPerBeat
		if rate <= 0 {
			return nil, fmt.Errorf("arpeggio rate must be positive, got %v", art.Rate)
		}
		gate := art.Gate
		if gate <= 0 || gate > 1 {
			gate = 1
		}
		order := arpeggioOrder(len(noteNames), art.Direction)
		// sub-steps whose onset would reach the chord's end are dropped
		for k := 0; float64(k)*rate < dur; k++ {
			var idx int
			if art.Direction == song.ArpRandom {
				idx = rng.Intn(len(noteNames))
			} else {
				idx = order[k%len(order)]
			}
			emit(noteNames[idx], start+float64(k)*rate, rate*gate)
		}
	}

	return out, nil
}

// arpeggioOrder yields one cycle of note indices for a direction. upDown
// walks the stack and back without repeating the two end notes.
func arpeggioOrder(n int, dir song.ArpDirection) []int {
	switch dir {
	case song.ArpDown:
		out := make([]int, n)
		for i := range out {
			out[i] = n - 1 - i
		}
		return out
	case song.ArpUpDown:
		if n <= 2 {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		}
		out := make([]int, 0, 2*n-2)
		for i := 0; i < n; i++ {
			out = append(out, i)
		}
		for i := n - 2; i >= 1; i-- {
			out = append(out, i)
		}
		return out
	default: // ArpUp, and the cycle random indexes over
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
}
