package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/middleware"
)

// AddAnswer creates an answer owned by the authenticated caller.
func (h *Handler) AddAnswer(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperr.Respond(c, apperr.CannotDecryptToken())
		return
	}

	// ShouldBind negotiates on Content-Type: JSON or form data.
	var answer domain.NewAnswer
	if err := c.ShouldBind(&answer); err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.InvalidBody(err))
		return
	}

	created, err := h.answers.Add(ctx, session, answer)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}
