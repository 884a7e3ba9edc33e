package theory

import (
	"fmt"
	"strings"
)

// Quality is the base quality of a chord symbol.
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
	Dominant7
	Major7
	Minor7
	HalfDiminished7 // m7b5
	Sus2
	Sus4
)

// qualitySymbols holds the canonical suffix written after the root.
var qualitySymbols = map[Quality]string{
	Major:           "",
	Minor:           "m",
	Diminished:      "dim",
	Augmented:       "aug",
	Dominant7:       "7",
	Major7:          "maj7",
	Minor7:          "m7",
	HalfDiminished7: "m7b5",
	Sus2:            "sus2",
	Sus4:            "sus4",
}

// qualityIntervals holds the root-position semitone stack per quality.
var qualityIntervals = map[Quality][]int{
	Major:           {0, 4, 7},
	Minor:           {0, 3, 7},
	Diminished:      {0, 3, 6},
	Augmented:       {0, 4, 8},
	Dominant7:       {0, 4, 7, 10},
	Major7:          {0, 4, 7, 11},
	Minor7:          {0, 3, 7, 10},
	HalfDiminished7: {0, 3, 6, 10},
	Sus2:            {0, 2, 7},
	Sus4:            {0, 5, 7},
}

// Symbol returns the canonical quality suffix ("m7", "dim", ...).
func (q Quality) Symbol() string {
	return qualitySymbols[q]
}

// HasSeventh reports whether the quality stacks four chord tones.
func (q Quality) HasSeventh() bool {
	return len(qualityIntervals[q]) == 4
}

// Alteration is an optional fifth alteration written in parentheses.
type Alteration int

const (
	AltNone Alteration = iota
	FlatFive
	SharpFive
)

func (a Alteration) String() string {
	switch a {
	case FlatFive:
		return "(b5)"
	case SharpFive:
		return "(#5)"
	}
	return ""
}

// extensionIntervals maps extension tokens to semitone offsets above the root.
var extensionIntervals = map[string]int{
	"add9":  14,
	"add11": 17,
	"add13": 21,
}

// Chord is an immutable structured chord symbol. Root and Bass keep their
// spelled form ("F#", "Bb") so that transposition can respell them while
// equality stays value-based.
type Chord struct {
	Root       string
	Quality    Quality
	Alteration Alteration
	Extensions []string
	Inversion  int
	Bass       string // explicit bass spelling for slash chords, "" if none
}

// RootClass returns the root pitch class.
func (c Chord) RootClass() PitchClass {
	pc, _ := ParsePitchClass(c.Root)
	return pc
}

// BassClass returns the explicit bass pitch class, if any.
func (c Chord) BassClass() (PitchClass, bool) {
	if c.Bass == "" {
		return 0, false
	}
	pc, err := ParsePitchClass(c.Bass)
	if err != nil {
		return 0, false
	}
	return pc, true
}

// PreferFlats reports whether the chord spells its accidentals as flats.
func (c Chord) PreferFlats() bool {
	return strings.ContainsRune(c.Root, 'b')
}

// MaxInversion is 3 for seventh chords (any of the four tones can become the
// bass) and 2 for triads.
func (c Chord) MaxInversion() int {
	if c.Quality.HasSeventh() {
		return 3
	}
	return 2
}

// String serializes the chord to its canonical text form, e.g. "F#m7b5",
// "G7/B" or "Am^1". The "^n" suffix is the internal inversion marker produced
// only by UpdateChord; Parse is its left inverse.
func (c Chord) String() string {
	var b strings.Builder
	b.WriteString(c.Root)
	b.WriteString(c.Quality.Symbol())
	b.WriteString(c.Alteration.String())
	for _, ext := range c.Extensions {
		b.WriteString(ext)
	}
	if c.Bass != "" {
		b.WriteString("/")
		b.WriteString(c.Bass)
	}
	if c.Inversion != 0 {
		fmt.Fprintf(&b, "^%d", c.Inversion)
	}
	return b.String()
}

// UpdateChord is the single inversion mutator. Positive values are clamped to
// [0, MaxInversion]. Negative values pass through: they are a UI octave-drop
// convenience, not an inversion, and the renderer treats them as "same note
// order, one octave down".
func UpdateChord(c Chord, inversion int) Chord {
	if inversion > c.MaxInversion() {
		inversion = c.MaxInversion()
	}
	c.Inversion = inversion
	return c
}
