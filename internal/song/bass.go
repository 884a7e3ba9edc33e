package song

import (
	"github.com/Intronet/Cadence-sub001/internal/theory"
)

// bassOctave is the fixed octave of derived bass notes.
const bassOctave = 2

// DeriveBass projects the chord sequence onto a bass line: one note per
// chord at the chord's root (or the explicit bass of a slash chord), fixed
// at octave 2, with identical start and duration. The result fully replaces
// any previous bass line; derived notes are never merged or hand-edited.
// Chords that fail to parse contribute no bass note.
func DeriveBass(p Pattern) []SequenceBassNote {
	var out []SequenceBassNote
	for _, c := range p.Sequence {
		parsed, err := theory.Parse(c.ChordName)
		if err != nil {
			continue
		}
		pc, ok := parsed.BassClass()
		if !ok {
			pc = parsed.RootClass()
		}
		note := theory.VoicedNote{Class: pc, Octave: bassOctave}
		out = append(out, SequenceBassNote{
			ID:       c.ID + ":bass",
			NoteName: note.Name(parsed.PreferFlats()),
			Start:    c.Start,
			Duration: c.Duration,
		})
	}
	return out
}
