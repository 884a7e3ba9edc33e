package theory

import "sort"

// Render realizes a chord as concrete pitched notes anchored at baseOctave.
// The result is always in ascending pitch order. Render is pure: the same
// inputs always produce the same note list.
func Render(c Chord, baseOctave int) []VoicedNote {
	intervals := append([]int(nil), qualityIntervals[c.Quality]...)

	// A parenthesized alteration moves the perfect fifth.
	if c.Alteration != AltNone {
		for i, iv := range intervals {
			if iv == 7 {
				if c.Alteration == FlatFive {
					intervals[i] = 6
				} else {
					intervals[i] = 8
				}
			}
		}
	}
	for _, ext := range c.Extensions {
		intervals = append(intervals, extensionIntervals[ext])
	}

	rootMIDI := (baseOctave+1)*12 + int(c.RootClass())
	stack := make([]int, 0, len(intervals)+1)
	for _, iv := range intervals {
		stack = append(stack, rootMIDI+iv)
	}
	sort.Ints(stack)

	// Slash-chord bass sits in the octave directly below the lowest stack
	// note. It is excluded from inversion rotation.
	bassMIDI, hasBass := 0, false
	if bassPC, ok := c.BassClass(); ok {
		lowest := stack[0]
		bassMIDI = lowest - 12 + ((int(bassPC)-lowest%12)%12+12)%12
		if bassMIDI == lowest {
			bassMIDI = lowest - 12
		}
		hasBass = true
	}

	switch {
	case c.Inversion > 0:
		// Each rotation lifts the current lowest stack note one octave.
		n := c.Inversion
		if n > len(stack)-1 {
			n = len(stack) - 1
		}
		for i := 0; i < n; i++ {
			stack[0] += 12
			sort.Ints(stack)
		}
	case c.Inversion < 0:
		// Octave-drop convenience: same note order, one octave down.
		for i := range stack {
			stack[i] -= 12
		}
		if hasBass {
			bassMIDI -= 12
		}
	}

	if hasBass {
		stack = append([]int{bassMIDI}, stack...)
		sort.Ints(stack)
	}

	notes := make([]VoicedNote, len(stack))
	for i, m := range stack {
		notes[i] = NoteFromMIDI(m)
	}
	return notes
}

// RenderNames renders a chord and serializes each note, spelling accidentals
// the way the chord itself is spelled.
func RenderNames(c Chord, baseOctave int) []string {
	flats := c.PreferFlats()
	notes := Render(c, baseOctave)
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.Name(flats)
	}
	return names
}
