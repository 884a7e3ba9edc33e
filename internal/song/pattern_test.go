package song

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPattern(t *testing.T) {
	p := NewPattern("Intro")
	assert.Equal(t, 4, p.Bars)
	assert.Equal(t, TimeSig44, p.TimeSig)
	assert.Equal(t, 64, p.TotalSteps())
	assert.Equal(t, 16.0, p.TotalBeats())
	for _, sound := range DefaultKit {
		assert.Len(t, p.Drums[sound], 64)
	}
}

func TestTimeSignatureGrid(t *testing.T) {
	assert.Equal(t, 16, TimeSig44.StepsPerBar())
	assert.Equal(t, 12, TimeSig34.StepsPerBar())
	assert.Equal(t, 4, TimeSig44.BeatsPerBar())
	assert.Equal(t, 3, TimeSig34.BeatsPerBar())
}

func TestAddChord(t *testing.T) {
	p := NewPattern("test")
	p2, err := p.AddChord(SequenceChord{ChordName: "Cmaj7", Start: 0, Duration: 16, Octave: 4})
	require.NoError(t, err)

	// value semantics: the original pattern is untouched
	assert.Empty(t, p.Sequence)
	require.Len(t, p2.Sequence, 1)
	assert.NotEmpty(t, p2.Sequence[0].ID)
}

func TestAddChord_OutOfRange(t *testing.T) {
	p := NewPattern("test")
	_, err := p.AddChord(SequenceChord{ChordName: "C", Start: 60, Duration: 8})
	require.Error(t, err)
	var rangeErr *InvalidRangeError
	assert.True(t, errors.As(err, &rangeErr))

	_, err = p.AddChord(SequenceChord{ChordName: "C", Start: -1, Duration: 4})
	assert.Error(t, err)

	_, err = p.AddChord(SequenceChord{ChordName: "C", Start: 0, Duration: 0})
	assert.Error(t, err)
}

func TestUpdateChord(t *testing.T) {
	p, err := NewPattern("test").AddChord(SequenceChord{ChordName: "C", Start: 0, Duration: 8, Octave: 4})
	require.NoError(t, err)
	id := p.Sequence[0].ID

	name := "Am7"
	start := 16
	p2, err := p.UpdateChord(id, ChordUpdate{ChordName: &name, Start: &start})
	require.NoError(t, err)

	assert.Equal(t, "Am7", p2.Sequence[0].ChordName)
	assert.Equal(t, 16, p2.Sequence[0].Start)
	assert.Equal(t, id, p2.Sequence[0].ID, "ids are stable across edits")
	assert.Equal(t, "C", p.Sequence[0].ChordName, "original untouched")

	_, err = p.UpdateChord("missing", ChordUpdate{ChordName: &name})
	assert.Error(t, err)
}

func TestUpdateChord_RejectsOutOfRange(t *testing.T) {
	p, err := NewPattern("test").AddChord(SequenceChord{ChordName: "C", Start: 0, Duration: 8})
	require.NoError(t, err)

	start := 100
	_, err = p.UpdateChord(p.Sequence[0].ID, ChordUpdate{Start: &start})
	var rangeErr *InvalidRangeError
	assert.True(t, errors.As(err, &rangeErr))
}

func TestRemoveChords(t *testing.T) {
	p := NewPattern("test")
	p, _ = p.AddChord(SequenceChord{ChordName: "C", Start: 0, Duration: 8})
	p, _ = p.AddChord(SequenceChord{ChordName: "F", Start: 8, Duration: 8})
	p, _ = p.AddChord(SequenceChord{ChordName: "G", Start: 16, Duration: 8})

	p2 := p.RemoveChords([]string{p.Sequence[0].ID, p.Sequence[2].ID})
	require.Len(t, p2.Sequence, 1)
	assert.Equal(t, "F", p2.Sequence[0].ChordName)
	assert.Len(t, p.Sequence, 3)
}

func TestSetDrumCell(t *testing.T) {
	p := NewPattern("test")
	p2, err := p.SetDrumCell("kick", 0, true)
	require.NoError(t, err)
	assert.True(t, p2.Drums["kick"][0])
	assert.False(t, p.Drums["kick"][0], "original untouched")

	_, err = p.SetDrumCell("kick", 64, true)
	assert.Error(t, err)

	// unknown sounds get a fresh grid
	p3, err := p.SetDrumCell("cowbell", 3, true)
	require.NoError(t, err)
	assert.True(t, p3.Drums["cowbell"][3])
}

func TestSetBars_DestructiveResize(t *testing.T) {
	p, err := NewPattern("test").SetBars(8)
	require.NoError(t, err)
	require.Equal(t, 128, p.TotalSteps())

	p, err = p.AddChord(SequenceChord{ChordName: "C", Start: 100, Duration: 4})
	require.NoError(t, err)
	p, err = p.AddChord(SequenceChord{ChordName: "F", Start: 60, Duration: 8})
	require.NoError(t, err)

	shrunk, err := p.SetBars(4)
	require.NoError(t, err)
	require.Equal(t, 64, shrunk.TotalSteps())

	// the chord at step 100 is beyond 4x16=64 and is gone; the chord at 60
	// survives with its duration clamped to the new end
	require.Len(t, shrunk.Sequence, 1)
	assert.Equal(t, "F", shrunk.Sequence[0].ChordName)
	assert.Equal(t, 4, shrunk.Sequence[0].Duration)

	_, err = p.SetBars(5)
	assert.Error(t, err)
}

func TestSetTimeSignature_ResizesGrids(t *testing.T) {
	p := NewPattern("test")
	p, _ = p.SetDrumCell("kick", 0, true)
	p, _ = p.AddChord(SequenceChord{ChordName: "C", Start: 50, Duration: 4})

	p2, err := p.SetTimeSignature(TimeSig34)
	require.NoError(t, err)
	assert.Equal(t, 48, p2.TotalSteps())
	assert.Len(t, p2.Drums["kick"], 48)
	assert.True(t, p2.Drums["kick"][0])
	assert.Empty(t, p2.Sequence, "chord at step 50 is beyond 4x12=48")
}

func TestCopy_RegeneratesIDs(t *testing.T) {
	p, _ := NewPattern("test").AddChord(SequenceChord{ChordName: "C", Start: 0, Duration: 8})
	cp := p.Copy("copy")
	assert.NotEqual(t, p.ID, cp.ID)
	assert.NotEqual(t, p.Sequence[0].ID, cp.Sequence[0].ID)
	assert.Equal(t, p.Sequence[0].ChordName, cp.Sequence[0].ChordName)
}
