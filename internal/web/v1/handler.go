// Package v1 exposes the HTTP surface of the API. Handlers bind the
// request, thread the verified session explicitly into the logic layer,
// and hand every failure to apperr.Respond. No status codes or client
// messages are chosen here.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/internal/logging"
	logicv1 "github.com/minhvu/qna-service/internal/logic/v1"
	"github.com/minhvu/qna-service/middleware"
)

// Handler groups the HTTP handlers for API v1.
// Dependencies are injected via the constructor, no global state.
type Handler struct {
	auth      *logicv1.AuthService
	questions *logicv1.QuestionService
	answers   *logicv1.AnswerService
}

// NewHandler creates a Handler with the given services.
func NewHandler(auth *logicv1.AuthService, questions *logicv1.QuestionService, answers *logicv1.AnswerService) *Handler {
	return &Handler{auth: auth, questions: questions, answers: answers}
}

// RegisterRoutes registers all API v1 routes on the given router group.
// Routes that mutate content require the authorization gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.POST("/registration", h.Register)
	rg.POST("/login", h.Login)
	rg.GET("/questions", h.ListQuestions)

	protected := rg.Group("")
	protected.Use(gate)
	protected.POST("/questions", h.AddQuestion)
	protected.PUT("/questions/:id", h.UpdateQuestion)
	protected.DELETE("/questions/:id", h.DeleteQuestion)
	protected.POST("/answers", h.AddAnswer)
}

// Register handles account registration.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	var account domain.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.InvalidBody(err))
		return
	}

	created, err := h.auth.Register(ctx, account)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	logging.FromContext(ctx).Info().Int("account_id", *created.ID).Msg("Account registered")
	c.JSON(http.StatusOK, gin.H{"id": *created.ID, "email": created.Email})
}

// Login handles credential verification and token issuance.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	var credentials domain.Account
	if err := c.ShouldBindJSON(&credentials); err != nil {
		span.RecordError(err)
		apperr.Respond(c, apperr.InvalidBody(err))
		return
	}

	token, err := h.auth.Login(ctx, credentials)
	if err != nil {
		span.RecordError(err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
