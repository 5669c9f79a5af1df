package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Respond is the terminal stage of the request pipeline. It logs one
// structured event tagged with the error kind and writes the final status
// and client-safe body. Failures that are not apperr values (which would
// mean a classification gap somewhere upstream) render as a generic 500.
func Respond(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	var appErr *Error
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Str("kind", "unclassified").Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	event := logger.Warn()
	if appErr.serverFault() {
		event = logger.Error()
	}
	event.Err(err).Str("kind", appErr.Kind.String()).Msg("Request failed")

	c.JSON(appErr.Status(), gin.H{"error": appErr.Message()})
}

// NoRoute handles requests that matched no registered route.
func NoRoute(c *gin.Context) {
	zerolog.Ctx(c.Request.Context()).Warn().
		Str("path", c.Request.URL.Path).
		Msg("Requested route was not found")
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}
