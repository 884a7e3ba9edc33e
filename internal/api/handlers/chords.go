package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Intronet/Cadence-sub001/internal/logger"
	"github.com/Intronet/Cadence-sub001/internal/theory"
)

const defaultRenderOctave = 4

// ChordHandler exposes the music-theory core over HTTP. It is stateless:
// every request carries the chord symbols it works on.
type ChordHandler struct{}

func NewChordHandler() *ChordHandler {
	return &ChordHandler{}
}

type ParseRequest struct {
	Symbols []string `json:"symbols" binding:"required"`
}

type ParsedSymbol struct {
	Input     string `json:"input"`
	OK        bool   `json:"ok"`
	Canonical string `json:"canonical,omitempty"`
	Root      string `json:"root,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Bass      string `json:"bass,omitempty"`
	Inversion int    `json:"inversion,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Parse validates chord symbols and returns their canonical decomposition
func (h *ChordHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]ParsedSymbol, len(req.Symbols))
	for i, sym := range req.Symbols {
		parsed, err := theory.Parse(sym)
		if err != nil {
			results[i] = ParsedSymbol{Input: sym, Error: err.Error()}
			continue
		}
		results[i] = ParsedSymbol{
			Input:     sym,
			OK:        true,
			Canonical: parsed.String(),
			Root:      parsed.Root,
			Quality:   parsed.Quality.Symbol(),
			Bass:      parsed.Bass,
			Inversion: parsed.Inversion,
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type RenderRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Octave *int   `json:"octave"`
}

type RenderResponse struct {
	Symbol string   `json:"symbol"`
	Notes  []string `json:"notes"`
	MIDI   []int    `json:"midi"`
}

// Render voices a chord symbol into concrete notes
func (h *ChordHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := theory.Parse(req.Symbol)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	octave := defaultRenderOctave
	if req.Octave != nil {
		octave = *req.Octave
	}

	voiced := theory.Render(parsed, octave)
	resp := RenderResponse{Symbol: parsed.String()}
	for _, n := range voiced {
		resp.Notes = append(resp.Notes, n.Name(parsed.PreferFlats()))
		resp.MIDI = append(resp.MIDI, n.MIDI())
	}

	c.JSON(http.StatusOK, resp)
}

type TransposeRequest struct {
	Progression []string `json:"progression" binding:"required"`
	Key         string   `json:"key" binding:"required"`
}

// Transpose moves a progression from C into the target key, respelling
// accidentals to match the key's preference
func (h *ChordHandler) Transpose(c *gin.Context) {
	var req TransposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chords := make([]theory.Chord, 0, len(req.Progression))
	for _, sym := range req.Progression {
		parsed, err := theory.Parse(sym)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "symbol": sym})
			return
		}
		chords = append(chords, parsed)
	}

	transposed, err := theory.TransposeProgression(chords, req.Key)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	out := make([]string, len(transposed))
	for i, ch := range transposed {
		out[i] = ch.String()
	}

	c.JSON(http.StatusOK, gin.H{"progression": out, "key": req.Key})
}

type DiatonicRequest struct {
	Key  string `json:"key" binding:"required"`
	Mode string `json:"mode" binding:"required"`
}

// Diatonic returns the seven seventh chords of a key and mode
func (h *ChordHandler) Diatonic(c *gin.Context) {
	var req DiatonicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chords, err := theory.DiatonicChords(req.Key, req.Mode)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	out := make([]string, len(chords))
	for i, ch := range chords {
		out[i] = ch.String()
	}

	c.JSON(http.StatusOK, gin.H{"chords": out, "key": req.Key, "mode": req.Mode})
}

type VoiceLeadRequest struct {
	Progression []string `json:"progression" binding:"required"`
}

// VoiceLead re-voices a progression with inversions that minimize bass
// movement between neighbors. Unparseable symbols pass through untouched.
func (h *ChordHandler) VoiceLead(c *gin.Context) {
	var req VoiceLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := theory.HumanizeProgression(req.Progression)
	logger.Debug("Voice-led progression", logger.Fields{
		"request_id": c.GetString("request_id"),
		"chords":     len(out),
	})

	c.JSON(http.StatusOK, gin.H{"progression": out})
}
