package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/middleware"
)

// ListQuestions returns questions within the requested pagination window.
func (h *Handler) ListQuestions(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	pagination, err := domain.ExtractPagination(c.Request.URL.Query())
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	questions, err := h.questions.List(ctx, pagination)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// AddQuestion creates a question owned by the authenticated caller.
func (h *Handler) AddQuestion(c *gin.Context) {
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

	var question domain.NewQuestion
	if err := c.ShouldBindJSON(&question); err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.InvalidBody(err))
		return
	}

	created, err := h.questions.Add(ctx, session, question)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// UpdateQuestion replaces a question the authenticated caller owns.
func (h *Handler) UpdateQuestion(c *gin.Context) {
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

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.Parse(err))
		return
	}

	var question domain.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.InvalidBody(err))
		return
	}

	updated, err := h.questions.Update(ctx, session, id, question)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteQuestion removes a question the authenticated caller owns.
func (h *Handler) DeleteQuestion(c *gin.Context) {
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

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.Parse(err))
		return
	}

	if err := h.questions.Delete(ctx, session, id); err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
