package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Intronet/Cadence-sub001/internal/config"
	"github.com/Intronet/Cadence-sub001/internal/logger"
	"github.com/Intronet/Cadence-sub001/internal/metrics"
	"github.com/Intronet/Cadence-sub001/internal/midifile"
	"github.com/Intronet/Cadence-sub001/internal/playback"
	"github.com/Intronet/Cadence-sub001/internal/song"
)

var bounceMetrics = metrics.NewSentryMetrics()

// PatternHandler builds patterns from request payloads and bounces them to
// MIDI files
type PatternHandler struct {
	cfg *config.Config
}

func NewPatternHandler(cfg *config.Config) *PatternHandler {
	return &PatternHandler{cfg: cfg}
}

type ExportChord struct {
	Name     string `json:"name" binding:"required"`
	Start    int    `json:"start"`
	Duration int    `json:"duration" binding:"required"`
	Octave   int    `json:"octave"`

	// Articulation: "block" (default), "strum" or "arpeggio"
	Articulation string  `json:"articulation"`
	StrumDelay   float64 `json:"strum_delay"`
	ArpRate      float64 `json:"arp_rate"`
	ArpDirection string  `json:"arp_direction"`
	ArpGate      float64 `json:"arp_gate"`
}

type ExportRequest struct {
	Name          string           `json:"name"`
	BPM           float64          `json:"bpm"`
	Bars          int              `json:"bars"`
	TimeSignature string           `json:"time_signature"`
	Chords        []ExportChord    `json:"chords" binding:"required"`
	Bass          bool             `json:"bass"`
	Drums         map[string][]int `json:"drums"`
	AutoVoiceLead bool             `json:"auto_voice_lead"`
}

// Export builds a pattern from the request and returns it as a standard
// MIDI file
func (h *PatternHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := buildPattern(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	bpm := req.BPM
	if bpm <= 0 {
		bpm = h.cfg.DefaultBPM
	}

	opts := playback.Options{
		ChordsEnabled: true,
		BassEnabled:   req.Bass,
		DrumsEnabled:  len(req.Drums) > 0,
		AutoVoiceLead: req.AutoVoiceLead,
		StrumDelay:    h.cfg.StrumDelaySec,
	}

	start := time.Now()
	var buf bytes.Buffer
	err = midifile.Export(p, bpm, opts, &buf)
	bounceMetrics.RecordBounce(c.Request.Context(), p.ID, time.Since(start), err == nil)
	if err != nil {
		logger.Error("MIDI bounce failed", err, logger.Fields{
			"request_id": c.GetString("request_id"),
			"pattern_id": p.ID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := p.Name
	if filename == "" {
		filename = "pattern"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, filename))
	c.Data(http.StatusOK, "audio/midi", buf.Bytes())
}

func buildPattern(req ExportRequest) (song.Pattern, error) {
	name := req.Name
	if name == "" {
		name = "pattern"
	}
	p := song.NewPattern(name)

	if req.TimeSignature == "3/4" {
		var err error
		p, err = p.SetTimeSignature(song.TimeSig34)
		if err != nil {
			return p, err
		}
	} else if req.TimeSignature != "" && req.TimeSignature != "4/4" {
		return p, fmt.Errorf("unsupported time signature %q", req.TimeSignature)
	}

	if req.Bars != 0 {
		var err error
		p, err = p.SetBars(req.Bars)
		if err != nil {
			return p, err
		}
	}

	for _, ch := range req.Chords {
		art, err := parseArticulation(ch)
		if err != nil {
			return p, err
		}
		p, err = p.AddChord(song.SequenceChord{
			ChordName:    ch.Name,
			Start:        ch.Start,
			Duration:     ch.Duration,
			Octave:       ch.Octave,
			Articulation: art,
		})
		if err != nil {
			return p, err
		}
	}

	if req.Bass {
		p.BassSequence = song.DeriveBass(p)
	}

	for sound, steps := range req.Drums {
		for _, step := range steps {
			var err error
			p, err = p.SetDrumCell(sound, step, true)
			if err != nil {
				return p, err
			}
		}
	}

	return p, nil
}

func parseArticulation(ch ExportChord) (song.Articulation, error) {
	switch ch.Articulation {
	case "", "block":
		return song.Block{}, nil
	case "strum":
		return song.Strum{Delay: ch.StrumDelay}, nil
	case "arpeggio":
		dir, err := parseArpDirection(ch.ArpDirection)
		if err != nil {
			return nil, err
		}
		return song.Arpeggio{Rate: ch.ArpRate, Direction: dir, Gate: ch.ArpGate}, nil
	default:
		return nil, fmt.Errorf("unknown articulation %q", ch.Articulation)
	}
}

func parseArpDirection(s string) (song.ArpDirection, error) {
	switch s {
	case "", "up":
		return song.ArpUp, nil
	case "down":
		return song.ArpDown, nil
	case "updown":
		return song.ArpUpDown, nil
	case "random":
		return song.ArpRandom, nil
	default:
		return song.ArpUp, fmt.Errorf("unknown arpeggio direction %q", s)
	}
}
