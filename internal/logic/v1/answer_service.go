package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/middleware"
)

// AnswerService implements answer management.
type AnswerService struct {
	answers domain.AnswerRepository
	censor  Censor
}

// NewAnswerService creates an AnswerService with the given dependencies.
func NewAnswerService(answers domain.AnswerRepository, censor Censor) *AnswerService {
	return &AnswerService{answers: answers, censor: censor}
}

// Add censors the answer content and persists it under the caller's account.
func (s *AnswerService) Add(ctx context.Context, session domain.Session, answer domain.NewAnswer) (domain.Answer, error) {
	ctx, span := middleware.StartSpan(ctx, "answer.add", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	content, err := s.censor.Censor(ctx, answer.Content)
	if err != nil {
		span.RecordError(err)
		return domain.Answer{}, err
	}
	answer.Content = content

	created, err := s.answers.Add(ctx, answer, session.AccountID)
	if err != nil {
		span.RecordError(err)
		return domain.Answer{}, err
	}
	return created, nil
}
