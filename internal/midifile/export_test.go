package midifile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Intronet/Cadence-sub001/internal/playback"
	"github.com/Intronet/Cadence-sub001/internal/song"
)

func allTracks() playback.Options {
	return playback.Options{ChordsEnabled: true, BassEnabled: true, DrumsEnabled: true}
}

func fixturePattern(t *testing.T) song.Pattern {
	t.Helper()
	p := song.NewPattern("bounce")
	var err error
	p, err = p.AddChord(song.SequenceChord{ChordName: "C", Start: 0, Duration: 8, Octave: 4})
	require.NoError(t, err)
	p, err = p.AddChord(song.SequenceChord{ChordName: "G7", Start: 8, Duration: 8, Octave: 4})
	require.NoError(t, err)
	p.BassSequence = song.DeriveBass(p)
	p, err = p.SetDrumCell("kick", 0, true)
	require.NoError(t, err)
	p, err = p.SetDrumCell("snare", 4, true)
	require.NoError(t, err)
	return p
}

// collect pulls (channel, key) pairs of note-ons from one track.
func noteOns(t *testing.T, tr smf.Track) [][2]uint8 {
	t.Helper()
	var out [][2]uint8
	for _, ev := range tr {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			out = append(out, [2]uint8{ch, key})
		}
	}
	return out
}

func TestExport_TrackLayoutAndKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(fixturePattern(t), 120, allTracks(), &buf))

	rd, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rd.Tracks, 4, "tempo + chords + bass + drums")

	chords := noteOns(t, rd.Tracks[1])
	require.Len(t, chords, 7) // C triad + G7 tetrad
	assert.Equal(t, [2]uint8{0, 60}, chords[0])
	assert.Equal(t, [2]uint8{0, 64}, chords[1])
	assert.Equal(t, [2]uint8{0, 67}, chords[2])
	assert.Equal(t, [2]uint8{0, 67}, chords[3]) // G4 opens the G7 stack

	bass := noteOns(t, rd.Tracks[2])
	require.Len(t, bass, 2)
	assert.Equal(t, [2]uint8{1, 36}, bass[0]) // C2
	assert.Equal(t, [2]uint8{1, 43}, bass[1]) // G2

	drums := noteOns(t, rd.Tracks[3])
	require.Len(t, drums, 2)
	assert.Equal(t, [2]uint8{9, 36}, drums[0]) // GM kick
	assert.Equal(t, [2]uint8{9, 38}, drums[1]) // GM snare
}

func TestExport_TickTiming(t *testing.T) {
	p := song.NewPattern("timing")
	p, err := p.AddChord(song.SequenceChord{ChordName: "C", Start: 4, Duration: 4, Octave: 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(p, 120, allTracks(), &buf))

	rd, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rd.Tracks, 2)

	// one step is a sixteenth: 240 ticks at 960 per quarter
	var abs uint32
	var onsets []uint32
	for _, ev := range rd.Tracks[1] {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			onsets = append(onsets, abs)
		}
	}
	require.Len(t, onsets, 3)
	for _, tick := range onsets {
		assert.Equal(t, uint32(4*240), tick)
	}
}

func TestExport_StrumOffsetsSurviveBounce(t *testing.T) {
	p := song.NewPattern("strum")
	p, err := p.AddChord(song.SequenceChord{
		ChordName:    "C",
		Start:        0,
		Duration:     8,
		Octave:       4,
		Articulation: song.Strum{},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(p, 120, allTracks(), &buf))

	rd, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var abs uint32
	var onsets []uint32
	for _, ev := range rd.Tracks[1] {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			onsets = append(onsets, abs)
		}
	}
	require.Len(t, onsets, 3)
	// 40ms at 120 BPM is 76.8 ticks, rounded per onset
	assert.Equal(t, uint32(0), onsets[0])
	assert.Equal(t, uint32(77), onsets[1])
	assert.Equal(t, uint32(154), onsets[2])
}

func TestExport_EmptyTracksAreOmitted(t *testing.T) {
	p := song.NewPattern("sparse")
	p, err := p.AddChord(song.SequenceChord{ChordName: "Am", Start: 0, Duration: 4, Octave: 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(p, 120, allTracks(), &buf))

	rd, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, rd.Tracks, 2, "no bass or drum events, no bass or drum tracks")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	require.NoError(t, WriteFile(path, fixturePattern(t), 96, allTracks()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
