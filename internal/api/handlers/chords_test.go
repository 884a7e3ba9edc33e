package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupChordTestRouter creates a minimal test router with the chord endpoints
func setupChordTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	h := NewChordHandler()
	router.POST("/api/v1/chords/parse", h.Parse)
	router.POST("/api/v1/chords/render", h.Render)
	router.POST("/api/v1/chords/transpose", h.Transpose)
	router.POST("/api/v1/chords/diatonic", h.Diatonic)
	router.POST("/api/v1/progressions/voicelead", h.VoiceLead)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChordHandler_Parse(t *testing.T) {
	router := setupChordTestRouter()

	w := postJSON(t, router, "/api/v1/chords/parse", ParseRequest{
		Symbols: []string{"Cmaj7", "G7/B", "nonsense"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []ParsedSymbol `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.True(t, resp.Results[0].OK)
	assert.Equal(t, "Cmaj7", resp.Results[0].Canonical)
	assert.Equal(t, "C", resp.Results[0].Root)

	assert.True(t, resp.Results[1].OK)
	assert.Equal(t, "B", resp.Results[1].Bass)

	assert.False(t, resp.Results[2].OK)
	assert.NotEmpty(t, resp.Results[2].Error)
}

func TestChordHandler_ParseRequiresSymbols(t *testing.T) {
	router := setupChordTestRouter()
	w := postJSON(t, router, "/api/v1/chords/parse", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChordHandler_Render(t *testing.T) {
	router := setupChordTestRouter()

	w := postJSON(t, router, "/api/v1/chords/render", RenderRequest{Symbol: "C"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"C4", "E4", "G4"}, resp.Notes)
	assert.Equal(t, []int{60, 64, 67}, resp.MIDI)
}

func TestChordHandler_RenderUnparseableSymbol(t *testing.T) {
	router := setupChordTestRouter()
	w := postJSON(t, router, "/api/v1/chords/render", RenderRequest{Symbol: "Q9"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestChordHandler_Transpose(t *testing.T) {
	router := setupChordTestRouter()

	w := postJSON(t, router, "/api/v1/chords/transpose", TransposeRequest{
		Progression: []string{"C", "Am7", "F", "G7"},
		Key:         "Eb",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Progression []string `json:"progression"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Eb", "Cm7", "Ab", "Bb7"}, resp.Progression)
}

func TestChordHandler_Diatonic(t *testing.T) {
	router := setupChordTestRouter()

	w := postJSON(t, router, "/api/v1/chords/diatonic", DiatonicRequest{Key: "C", Mode: "Major"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Chords []string `json:"chords"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Cmaj7", "Dm7", "Em7", "Fmaj7", "G7", "Am7", "Bm7b5"}, resp.Chords)
}

func TestChordHandler_DiatonicUnknownMode(t *testing.T) {
	router := setupChordTestRouter()
	w := postJSON(t, router, "/api/v1/chords/diatonic", DiatonicRequest{Key: "C", Mode: "Chromatic"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestChordHandler_VoiceLead(t *testing.T) {
	router := setupChordTestRouter()

	w := postJSON(t, router, "/api/v1/progressions/voicelead", VoiceLeadRequest{
		Progression: []string{"G", "C"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Progression []string `json:"progression"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"G", "C^2"}, resp.Progression)
}
