package api

import (
	"github.com/Intronet/Cadence-sub001/internal/api/handlers"
	apimiddleware "github.com/Intronet/Cadence-sub001/internal/api/middleware"
	"github.com/Intronet/Cadence-sub001/internal/config"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(version)
	router.GET("/health", healthHandler.HealthCheck)

	// API routes v1
	v1 := router.Group("/api/v1")
	{
		// Chord endpoints - parsing, voicing and key operations
		chordHandler := handlers.NewChordHandler()
		v1.POST("/chords/parse", chordHandler.Parse)
		v1.POST("/chords/render", chordHandler.Render)
		v1.POST("/chords/transpose", chordHandler.Transpose)
		v1.POST("/chords/diatonic", chordHandler.Diatonic)
		v1.POST("/progressions/voicelead", chordHandler.VoiceLead)

		// Pattern endpoints - MIDI bounce
		patternHandler := handlers.NewPatternHandler(cfg)
		v1.POST("/patterns/export", patternHandler.Export)
	}

	return router
}
