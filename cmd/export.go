package cmd

import (
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Intronet/Cadence-sub001/internal/midifile"
	"github.com/Intronet/Cadence-sub001/internal/playback"
	"github.com/Intronet/Cadence-sub001/internal/song"
	"github.com/Intronet/Cadence-sub001/internal/theory"
)

var (
	exportOut       string
	exportBPM       float64
	exportBars      int
	exportBass      bool
	exportVoiceLead bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "pattern.mid", "output MIDI file path")
	exportCmd.Flags().Float64Var(&exportBPM, "bpm", 120, "tempo in beats per minute")
	exportCmd.Flags().IntVar(&exportBars, "bars", 4, "pattern length in bars (4 or 8)")
	exportCmd.Flags().BoolVar(&exportBass, "bass", false, "derive a bass line from the chords")
	exportCmd.Flags().BoolVar(&exportVoiceLead, "voicelead", false, "re-voice the progression for smooth bass motion")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [chords]",
	Short: "Bounce a chord progression to a MIDI file",
	Long: `Bounces a comma-separated chord progression to a standard MIDI file,
spreading the chords evenly across the pattern. Example:

  cadence export "C,Am7,F,G7" --bass -o progression.mid`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := export(args[0]); err != nil {
			log.Fatal("Export failed: ", err)
		}
	},
}

func export(progression string) error {
	names := strings.Split(progression, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	// fail early on symbols the sequencer would silently skip
	for _, name := range names {
		if _, err := theory.Parse(name); err != nil {
			return err
		}
	}

	p := song.NewPattern("export")
	if exportBars != 4 {
		var err error
		p, err = p.SetBars(exportBars)
		if err != nil {
			return err
		}
	}

	steps := p.TotalSteps() / len(names)
	for i, name := range names {
		var err error
		p, err = p.AddChord(song.SequenceChord{
			ChordName: name,
			Start:     i * steps,
			Duration:  steps,
			Octave:    4,
		})
		if err != nil {
			return err
		}
	}

	if exportBass {
		p.BassSequence = song.DeriveBass(p)
	}

	opts := playback.Options{
		ChordsEnabled: true,
		BassEnabled:   exportBass,
		AutoVoiceLead: exportVoiceLead,
	}
	if err := midifile.WriteFile(exportOut, p, exportBPM, opts); err != nil {
		return err
	}

	log.Printf("🎵 Wrote %d chords to %s", len(names), exportOut)
	return nil
}
