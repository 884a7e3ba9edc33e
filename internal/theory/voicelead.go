package theory

// voiceLeadOctave is the octave candidates are rendered at when comparing
// bass-note movement.
const voiceLeadOctave = 4

// HumanizeProgression picks an inversion for each chord after the first that
// minimizes the bass-note jump from the previous (already chosen) chord.
// This is deliberately a greedy one-step-lookback search, not a global
// optimum: ties prefer the smaller inversion index, and the first chord keeps
// its default root-position voicing. Unparseable names pass through verbatim.
func HumanizeProgression(names []string) []string {
	out := make([]string, len(names))
	prevLowest := -1

	for i, name := range names {
		c, err := Parse(name)
		if err != nil {
			out[i] = name
			prevLowest = -1
			continue
		}

		if i == 0 || prevLowest < 0 {
			c = UpdateChord(c, 0)
			out[i] = c.String()
			prevLowest = lowestMIDI(c)
			continue
		}

		best := c
		bestDist := -1
		for inv := 0; inv <= c.MaxInversion(); inv++ {
			cand := UpdateChord(c, inv)
			dist := absInt(lowestMIDI(cand) - prevLowest)
			if bestDist < 0 || dist < bestDist {
				best = cand
				bestDist = dist
			}
		}
		out[i] = best.String()
		prevLowest = lowestMIDI(best)
	}
	return out
}

func lowestMIDI(c Chord) int {
	notes := Render(c, voiceLeadOctave)
	return notes[0].MIDI()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
