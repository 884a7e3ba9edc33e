package theory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseError reports malformed chord or note text. It is always recoverable:
// callers fall back to treating the input as a literal, unparsed label.
type ParseError struct {
	Input     string
	Offending string
	Pos       int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: unexpected %q at position %d", e.Input, e.Offending, e.Pos)
}

// qualityTokens lists recognized quality spellings, longest first so the
// scanner can take the longest match. Aliases normalize to one Quality.
var qualityTokens = []struct {
	token   string
	quality Quality
}{
	{"min7b5", HalfDiminished7},
	{"m7b5", HalfDiminished7},
	{"maj7", Major7},
	{"min7", Minor7},
	{"sus2", Sus2},
	{"sus4", Sus4},
	{"dim", Diminished},
	{"aug", Augmented},
	{"min", Minor},
	{"ø7", HalfDiminished7},
	{"m7", Minor7},
	{"m", Minor},
	{"7", Dominant7},
}

// Parse parses a chord symbol in the grammar
//
//	<RootLetter A-G><#|b?><quality?><(b5)|(#5)?><add9|add11|add13...?></Bass?><^inversion?>
//
// Parsing is total over this grammar: anything else yields a *ParseError.
func Parse(text string) (Chord, error) {
	var c Chord
	s := text
	pos := 0

	fail := func(off string) (Chord, error) {
		return Chord{}, &ParseError{Input: text, Offending: off, Pos: pos}
	}

	// Root letter plus optional accidental.
	if len(s) == 0 {
		return fail("")
	}
	if _, ok := letterOffsets[s[0]]; !ok {
		return fail(s[:1])
	}
	rootLen := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		rootLen = 2
	}
	c.Root = s[:rootLen]
	s = s[rootLen:]
	pos += rootLen

	// Quality token, longest match. Absent means a major triad.
	c.Quality = Major
	for _, qt := range qualityTokens {
		if strings.HasPrefix(s, qt.token) {
			c.Quality = qt.quality
			s = s[len(qt.token):]
			pos += len(qt.token)
			break
		}
	}

	// Optional fifth alteration.
	switch {
	case strings.HasPrefix(s, "(b5)"):
		c.Alteration = FlatFive
		s = s[4:]
		pos += 4
	case strings.HasPrefix(s, "(#5)"):
		c.Alteration = SharpFive
		s = s[4:]
		pos += 4
	}

	// min7(b5) and m7(b5) are alternative spellings of the half-diminished
	// seventh. Fold them so equality and round-tripping stay canonical.
	if c.Quality == Minor7 && c.Alteration == FlatFive {
		c.Quality = HalfDiminished7
		c.Alteration = AltNone
	}

	// Added-tone extensions, in any order, kept sorted.
	for {
		matched := false
		for ext := range extensionIntervals {
			if strings.HasPrefix(s, ext) {
				c.Extensions = append(c.Extensions, ext)
				s = s[len(ext):]
				pos += len(ext)
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	sort.Strings(c.Extensions)

	// Optional explicit bass.
	if strings.HasPrefix(s, "/") {
		s = s[1:]
		pos++
		if len(s) == 0 {
			return fail("")
		}
		if _, ok := letterOffsets[s[0]]; !ok {
			return fail(s[:1])
		}
		bassLen := 1
		if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
			bassLen = 2
		}
		c.Bass = s[:bassLen]
		s = s[bassLen:]
		pos += bassLen
	}

	// Internal inversion marker. Never typed by users; written by UpdateChord.
	if strings.HasPrefix(s, "^") {
		inv, err := strconv.Atoi(s[1:])
		if err != nil {
			pos++
			return fail(s[1:])
		}
		c.Inversion = inv
		s = ""
	}

	if s != "" {
		return fail(s)
	}
	return c, nil
}
