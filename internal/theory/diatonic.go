package theory

import "fmt"

// majorSteps is the interval pattern of the major scale; every supported mode
// is one of its rotations.
var majorSteps = [7]int{0, 2, 4, 5, 7, 9, 11}

// modeRotations maps mode names to their rotation of the major scale.
var modeRotations = map[string]int{
	"Major":      0,
	"Ionian":     0,
	"Dorian":     1,
	"Phrygian":   2,
	"Lydian":     3,
	"Mixolydian": 4,
	"Minor":      5,
	"Aeolian":    5,
	"Locrian":    6,
}

// scaleDegrees builds the seven pitch classes of the mode rooted at root.
func scaleDegrees(root PitchClass, rotation int) [7]PitchClass {
	var pcs [7]PitchClass
	base := majorSteps[rotation]
	for i := 0; i < 7; i++ {
		pcs[i] = root.Transpose(majorSteps[(rotation+i)%7] - base)
	}
	return pcs
}

// DiatonicChords derives the seven diatonic seventh chords of a mode, in
// scale-degree order (I..VII). Quality is derived from the scale itself by
// stacking thirds within it, never chosen.
func DiatonicChords(rootNote string, mode string) ([]Chord, error) {
	root, err := ParsePitchClass(rootNote)
	if err != nil {
		return nil, err
	}
	rotation, ok := modeRotations[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	pcs := scaleDegrees(root, rotation)
	preferFlats := KeyPrefersFlats(rootNote)

	chords := make([]Chord, 7)
	for deg := 0; deg < 7; deg++ {
		tonic := pcs[deg]
		third := int(pcs[(deg+2)%7].Transpose(-int(tonic)))
		fifth := int(pcs[(deg+4)%7].Transpose(-int(tonic)))
		seventh := int(pcs[(deg+6)%7].Transpose(-int(tonic)))

		quality := seventhQuality(third, fifth, seventh)
		chords[deg] = Chord{
			Root:    tonic.Name(preferFlats),
			Quality: quality,
		}
	}
	return chords, nil
}

// seventhQuality classifies a stacked (third, fifth, seventh) interval set.
// The modal rotations of the major scale only ever produce these four.
func seventhQuality(third, fifth, seventh int) Quality {
	switch {
	case third == 4 && fifth == 7 && seventh == 11:
		return Major7
	case third == 3 && fifth == 7 && seventh == 10:
		return Minor7
	case third == 4 && fifth == 7 && seventh == 10:
		return Dominant7
	case third == 3 && fifth == 6 && seventh == 10:
		return HalfDiminished7
	case third == 3 && fifth == 6:
		return Diminished
	case third == 3:
		return Minor
	default:
		return Major
	}
}
