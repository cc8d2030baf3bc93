package api

import (
	"errors"
	"net/http"

	"github.com/fashion-digest/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	msgNotFound        = "The requested page was not found."
	msgAlreadySeeded   = "Sample content already exists. The database has already been seeded."
	msgTooManyRequests = "Too many comments. Please wait a moment and try again."
	msgInternal        = "Something went wrong. Please try again later."
	msgCSRF            = "The CSRF token is missing or invalid."
)

// respondError maps a service error to a status code and renders the error page
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		renderError(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, models.ErrDuplicateTitle):
		renderError(c, http.StatusConflict, msgAlreadySeeded)
	default:
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request failed")
		renderError(c, http.StatusInternalServerError, msgInternal)
	}
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}
