package theory

// flatKeys lists the major keys whose signature carries flats. Progressions
// transposed into these keys spell accidentals as flats; everything else
// spells sharps.
var flatKeys = map[string]bool{
	"F":  true,
	"Bb": true,
	"Eb": true,
	"Ab": true,
	"Db": true,
	"Gb": true,
	"Cb": true,
}

// KeyPrefersFlats reports the accidental preference of a key signature.
func KeyPrefersFlats(key string) bool {
	return flatKeys[key]
}

// referenceKey is the fixed key progressions are authored in.
const referenceKey = "C"

// TransposeChord shifts the chord's root (and explicit bass, if present) by
// interval semitones mod 12 and respells it per the accidental preference.
// Quality, alteration, extensions and inversion carry over unchanged.
func TransposeChord(c Chord, interval int, preferSharps bool) Chord {
	c.Root = c.RootClass().Transpose(interval).Name(!preferSharps)
	if bassPC, ok := c.BassClass(); ok {
		c.Bass = bassPC.Transpose(interval).Name(!preferSharps)
	}
	return c
}

// TransposeProgression moves every chord by the interval between the
// reference key (C) and targetKey, spelling per the target key's signature.
func TransposeProgression(chords []Chord, targetKey string) ([]Chord, error) {
	targetPC, err := ParsePitchClass(targetKey)
	if err != nil {
		return nil, err
	}
	refPC, _ := ParsePitchClass(referenceKey)
	interval := int(targetPC.Transpose(-int(refPC)))
	preferSharps := !KeyPrefersFlats(targetKey)

	out := make([]Chord, len(chords))
	for i, c := range chords {
		out[i] = TransposeChord(c, interval, preferSharps)
	}
	return out, nil
}
