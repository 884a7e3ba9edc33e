// Package midifile bounces patterns to standard MIDI files. The same
// expansion that drives live playback feeds the file writer, so a bounce is
// exactly one un-humanized loop pass.
package midifile

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Intronet/Cadence-sub001/internal/playback"
	"github.com/Intronet/Cadence-sub001/internal/song"
	"github.com/Intronet/Cadence-sub001/internal/theory"
)

const ticksPerQuarter = 960

// General MIDI percussion keys for the built-in kit, fired on channel 10
// (zero-based 9).
const drumChannel = 9

var gmDrumKeys = map[string]uint8{
	"kick":  36,
	"snare": 38,
	"hat":   42,
	"clap":  39,
}

// midiEvent is a channel message at an absolute tick, prior to delta
// encoding.
type midiEvent struct {
	tick uint32
	off  bool // note-offs sort before note-ons at the same tick
	msg  midi.Message
}

// Export writes one loop pass of the pattern as a multi-track SMF: chords,
// derived bass and drums on separate tracks. Malformed chord events are
// skipped, matching playback.
func Export(p song.Pattern, bpm float64, opts playback.Options, w io.Writer) error {
	notes, drums, _ := playback.ExpandPattern(p, bpm, opts, rand.New(rand.NewSource(1)))

	secPerBeat := 60.0 / bpm
	toTicks := func(sec float64) uint32 {
		return uint32(sec/secPerBeat*ticksPerQuarter + 0.5)
	}

	var chordEvents, bassEvents, drumEvents []midiEvent
	for _, n := range notes {
		key, err := theory.NoteNameToMIDI(n.Note)
		if err != nil {
			return fmt.Errorf("exporting %q: %w", n.Note, err)
		}
		if key < 0 || key > 127 {
			continue
		}
		var ch uint8
		dst := &chordEvents
		if n.Kind == playback.KindBass {
			ch = 1
			dst = &bassEvents
		}
		*dst = append(*dst,
			midiEvent{tick: toTicks(n.At), msg: midi.NoteOn(ch, uint8(key), uint8(n.Velocity))},
			midiEvent{tick: toTicks(n.At + n.Duration), off: true, msg: midi.NoteOff(ch, uint8(key))},
		)
	}

	stepTicks := uint32(ticksPerQuarter / 4)
	for _, d := range drums {
		key, ok := gmDrumKeys[d.Sound]
		if !ok {
			continue
		}
		drumEvents = append(drumEvents,
			midiEvent{tick: toTicks(d.At), msg: midi.NoteOn(drumChannel, key, 100)},
			midiEvent{tick: toTicks(d.At) + stepTicks, off: true, msg: midi.NoteOff(drumChannel, key)},
		)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	if err := s.Add(tempoTrack(p.Name, bpm)); err != nil {
		return err
	}
	for _, tr := range []struct {
		name   string
		events []midiEvent
	}{
		{"chords", chordEvents},
		{"bass", bassEvents},
		{"drums", drumEvents},
	} {
		if len(tr.events) == 0 {
			continue
		}
		if err := s.Add(eventTrack(tr.name, tr.events)); err != nil {
			return err
		}
	}

	_, err := s.WriteTo(w)
	return err
}

// WriteFile bounces the pattern to a file at path.
func WriteFile(path string, p song.Pattern, bpm float64, opts playback.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(p, bpm, opts, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func tempoTrack(name string, bpm float64) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(bpm))
	tr.Close(0)
	return tr
}

func eventTrack(name string, events []midiEvent) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	var last uint32
	for _, ev := range events {
		tr.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	tr.Close(0)
	return tr
}
