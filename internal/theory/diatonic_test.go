package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chordNames(chords []Chord) []string {
	out := make([]string, len(chords))
	for i, c := range chords {
		out[i] = c.String()
	}
	return out
}

func TestDiatonicChords_CMajor(t *testing.T) {
	chords, err := DiatonicChords("C", "Major")
	require.NoError(t, err)
	require.Len(t, chords, 7)

	assert.Equal(t,
		[]string{"Cmaj7", "Dm7", "Em7", "Fmaj7", "G7", "Am7", "Bm7b5"},
		chordNames(chords))

	// the ii chord is always minor, rooted on D
	assert.Equal(t, "D", chords[1].Root)
	assert.Equal(t, Minor7, chords[1].Quality)
}

func TestDiatonicChords_AMinor(t *testing.T) {
	chords, err := DiatonicChords("A", "Minor")
	require.NoError(t, err)

	// natural minor is the Aeolian rotation of C major
	assert.Equal(t,
		[]string{"Am7", "Bm7b5", "Cmaj7", "Dm7", "Em7", "Fmaj7", "G7"},
		chordNames(chords))
}

func TestDiatonicChords_Modes(t *testing.T) {
	dorian, err := DiatonicChords("D", "Dorian")
	require.NoError(t, err)
	assert.Equal(t, "Dm7", dorian[0].String())

	mixolydian, err := DiatonicChords("G", "Mixolydian")
	require.NoError(t, err)
	assert.Equal(t, "G7", mixolydian[0].String())

	lydian, err := DiatonicChords("F", "Lydian")
	require.NoError(t, err)
	assert.Equal(t, "Fmaj7", lydian[0].String())
}

func TestDiatonicChords_FlatKeySpelling(t *testing.T) {
	chords, err := DiatonicChords("F", "Major")
	require.NoError(t, err)
	// the IV of F major is Bb, spelled flat per the key signature
	assert.Equal(t, "Bb", chords[3].Root)
}

func TestDiatonicChords_UnknownMode(t *testing.T) {
	_, err := DiatonicChords("C", "Klingon")
	assert.Error(t, err)
}
