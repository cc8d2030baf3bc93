package api

import (
	"errors"
	"net/http"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupHandler handles the seed route
type SetupHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSetupHandler creates a new SetupHandler
func NewSetupHandler(services *service.Services, log zerolog.Logger) *SetupHandler {
	return &SetupHandler{
		services: services,
		log:      log.With().Str("handler", "setup").Logger(),
	}
}

// Setup handles GET /setup. It seeds the sample content and redirects
// home; a second call answers 409 because the titles already exist.
func (h *SetupHandler) Setup(c *gin.Context) {
	result, err := h.services.Seed.Seed(c.Request.Context())
	if err != nil {
		outcome := "error"
		if errors.Is(err, models.ErrDuplicateTitle) {
			outcome = "duplicate"
			h.log.Warn().Err(err).Msg("Setup called on an already seeded database")
		}
		seedRunsTotal.WithLabelValues(outcome).Inc()
		respondError(c, h.log, err)
		return
	}

	seedRunsTotal.WithLabelValues("ok").Inc()
	h.log.Info().
		Int("articles", result.Articles).
		Int("videos", result.Videos).
		Msg("Setup completed")

	c.Redirect(http.StatusFound, "/")
}
