package theory

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Chord
	}{
		{
			name:     "major triad",
			input:    "C",
			expected: Chord{Root: "C", Quality: Major},
		},
		{
			name:     "minor short form",
			input:    "Em",
			expected: Chord{Root: "E", Quality: Minor},
		},
		{
			name:     "minor long form",
			input:    "Emin",
			expected: Chord{Root: "E", Quality: Minor},
		},
		{
			name:     "sharp root dominant",
			input:    "F#7",
			expected: Chord{Root: "F#", Quality: Dominant7},
		},
		{
			name:     "flat root major seventh",
			input:    "Bbmaj7",
			expected: Chord{Root: "Bb", Quality: Major7},
		},
		{
			name:     "minor seventh",
			input:    "Am7",
			expected: Chord{Root: "A", Quality: Minor7},
		},
		{
			name:     "half diminished compact",
			input:    "Bm7b5",
			expected: Chord{Root: "B", Quality: HalfDiminished7},
		},
		{
			name:     "half diminished spelled with alteration",
			input:    "F#min7(b5)",
			expected: Chord{Root: "F#", Quality: HalfDiminished7},
		},
		{
			name:     "diminished",
			input:    "Ddim",
			expected: Chord{Root: "D", Quality: Diminished},
		},
		{
			name:     "augmented",
			input:    "Caug",
			expected: Chord{Root: "C", Quality: Augmented},
		},
		{
			name:     "sus2",
			input:    "Dsus2",
			expected: Chord{Root: "D", Quality: Sus2},
		},
		{
			name:     "sus4",
			input:    "Gsus4",
			expected: Chord{Root: "G", Quality: Sus4},
		},
		{
			name:     "altered fifth on dominant",
			input:    "C7(#5)",
			expected: Chord{Root: "C", Quality: Dominant7, Alteration: SharpFive},
		},
		{
			name:     "added ninth",
			input:    "Cadd9",
			expected: Chord{Root: "C", Quality: Major, Extensions: []string{"add9"}},
		},
		{
			name:     "slash chord",
			input:    "G7/B",
			expected: Chord{Root: "G", Quality: Dominant7, Bass: "B"},
		},
		{
			name:     "slash chord with accidental bass",
			input:    "D/F#",
			expected: Chord{Root: "D", Quality: Major, Bass: "F#"},
		},
		{
			name:     "inversion marker",
			input:    "Am^1",
			expected: Chord{Root: "A", Quality: Minor, Inversion: 1},
		},
		{
			name:     "negative inversion marker",
			input:    "C^-1",
			expected: Chord{Root: "C", Quality: Major, Inversion: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got.Root != tt.expected.Root ||
				got.Quality != tt.expected.Quality ||
				got.Alteration != tt.expected.Alteration ||
				got.Bass != tt.expected.Bass ||
				got.Inversion != tt.expected.Inversion {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
			if len(got.Extensions) != len(tt.expected.Extensions) {
				t.Errorf("Parse(%q) extensions = %v, want %v", tt.input, got.Extensions, tt.expected.Extensions)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	inputs := []string{"", "H", "Cx", "C/", "C/h", "Cm7(b9)", "123"}
	for _, input := range inputs {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q): expected error, got none", input)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): expected *ParseError, got %T", input, err)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// serialize then parse must reproduce the chord exactly
	roots := []string{"C", "F#", "Bb", "E", "Ab"}
	qualities := []Quality{Major, Minor, Diminished, Augmented, Dominant7, Major7, Minor7, HalfDiminished7, Sus2, Sus4}

	for _, root := range roots {
		for _, q := range qualities {
			for inv := -1; inv <= 3; inv++ {
				c := Chord{Root: root, Quality: q}
				c = UpdateChord(c, inv)
				if q == Major {
					c.Extensions = []string{"add9"}
					c.Bass = "G"
				}
				got, err := Parse(c.String())
				if err != nil {
					t.Fatalf("Parse(%q) failed: %v", c.String(), err)
				}
				if got.String() != c.String() {
					t.Errorf("round trip: %q -> %q", c.String(), got.String())
				}
				if got.Root != c.Root || got.Quality != c.Quality || got.Inversion != c.Inversion || got.Bass != c.Bass {
					t.Errorf("round trip %q: got %+v, want %+v", c.String(), got, c)
				}
			}
		}
	}
}

func TestUpdateChord_ClampsInversion(t *testing.T) {
	seventh, _ := Parse("G7")
	if got := UpdateChord(seventh, 5).Inversion; got != 3 {
		t.Errorf("seventh chord inversion clamp: got %d, want 3", got)
	}

	triad, _ := Parse("C")
	if got := UpdateChord(triad, 5).Inversion; got != 2 {
		t.Errorf("triad inversion clamp: got %d, want 2", got)
	}

	// negative values are the octave-drop convenience and pass through
	if got := UpdateChord(triad, -1).Inversion; got != -1 {
		t.Errorf("negative inversion: got %d, want -1", got)
	}
}
