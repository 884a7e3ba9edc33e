package theory

import "fmt"

// PitchClass is a chromatic pitch class, 0 (C) through 11 (B).
// Equality is by integer value; display depends on the caller's
// accidental preference.
type PitchClass int

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "Fb", "Gb", "G", "Ab", "A", "Bb", "Cb"}

func init() {
	// Fb and Cb are theoretically correct but never what a chord pad
	// should display. Use the natural spellings.
	flatNames[4] = "E"
	flatNames[11] = "B"
}

// letterOffsets maps note letters to semitone offsets from C.
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// SharpName returns the sharp spelling of the pitch class (e.g. "F#").
func (pc PitchClass) SharpName() string {
	return sharpNames[((int(pc)%12)+12)%12]
}

// FlatName returns the flat spelling of the pitch class (e.g. "Gb").
func (pc PitchClass) FlatName() string {
	return flatNames[((int(pc)%12)+12)%12]
}

// Name returns the spelling for the given accidental preference.
func (pc PitchClass) Name(preferFlats bool) string {
	if preferFlats {
		return pc.FlatName()
	}
	return pc.SharpName()
}

// Transpose shifts the pitch class by interval semitones, mod 12.
func (pc PitchClass) Transpose(interval int) PitchClass {
	return PitchClass((((int(pc) + interval) % 12) + 12) % 12)
}

// ParsePitchClass parses a spelled pitch class like "C", "F#" or "Bb".
func ParsePitchClass(s string) (PitchClass, error) {
	if len(s) == 0 {
		return 0, &ParseError{Input: s, Offending: s, Pos: 0}
	}
	offset, ok := letterOffsets[s[0]]
	if !ok {
		return 0, &ParseError{Input: s, Offending: s[:1], Pos: 0}
	}
	switch {
	case len(s) == 1:
		return PitchClass(offset), nil
	case len(s) == 2 && s[1] == '#':
		return PitchClass(offset + 1).Transpose(0), nil
	case len(s) == 2 && s[1] == 'b':
		return PitchClass(offset - 1).Transpose(0), nil
	}
	return 0, &ParseError{Input: s, Offending: s[1:], Pos: 1}
}

// VoicedNote is a pitch class placed in a concrete octave.
type VoicedNote struct {
	Class  PitchClass
	Octave int
}

// MIDI returns the MIDI note number (C4 = 60).
func (v VoicedNote) MIDI() int {
	return (v.Octave+1)*12 + int(v.Class)
}

// Name serializes the note as "<letter><accidental?><octave>", e.g. "F#3".
func (v VoicedNote) Name(preferFlats bool) string {
	return fmt.Sprintf("%s%d", v.Class.Name(preferFlats), v.Octave)
}

func (v VoicedNote) String() string {
	return v.Name(false)
}

// NoteFromMIDI converts a MIDI note number back to a voiced note.
func NoteFromMIDI(midi int) VoicedNote {
	return VoicedNote{Class: PitchClass(((midi % 12) + 12) % 12), Octave: midi/12 - 1}
}

// NoteNameToMIDI converts a note name like "E1", "C4", "F#3" or "Bb2" to a
// MIDI note number.
func NoteNameToMIDI(name string) (int, error) {
	if len(name) < 2 {
		return 0, &ParseError{Input: name, Offending: name, Pos: 0}
	}
	offset, ok := letterOffsets[name[0]]
	if !ok {
		return 0, &ParseError{Input: name, Offending: name[:1], Pos: 0}
	}
	idx := 1
	if name[idx] == '#' {
		offset++
		idx++
	} else if name[idx] == 'b' {
		offset--
		idx++
	}
	if idx >= len(name) {
		return 0, &ParseError{Input: name, Offending: "", Pos: idx}
	}
	var octave int
	if _, err := fmt.Sscanf(name[idx:], "%d", &octave); err != nil {
		return 0, &ParseError{Input: name, Offending: name[idx:], Pos: idx}
	}
	return (octave+1)*12 + offset, nil
}
