package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/middleware"
)

// Censor filters profanity out of free-text content. Implemented by the
// moderation API client; tests substitute their own.
type Censor interface {
	Censor(ctx context.Context, content string) (string, error)
}

// QuestionService implements question management.
type QuestionService struct {
	questions domain.QuestionRepository
	censor    Censor
}

// NewQuestionService creates a QuestionService with the given dependencies.
func NewQuestionService(questions domain.QuestionRepository, censor Censor) *QuestionService {
	return &QuestionService{questions: questions, censor: censor}
}

// List returns questions within the pagination window.
func (s *QuestionService) List(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	ctx, span := middleware.StartSpan(ctx, "question.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	questions, err := s.questions.List(ctx, p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return questions, nil
}

// Add censors title and content concurrently and persists the question
// under the caller's account.
func (s *QuestionService) Add(ctx context.Context, session domain.Session, question domain.NewQuestion) (domain.Question, error) {
	ctx, span := middleware.StartSpan(ctx, "question.add", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	censored, err := s.censorQuestion(ctx, question.Title, question.Content)
	if err != nil {
		span.RecordError(err)
		return domain.Question{}, err
	}
	question.Title, question.Content = censored.title, censored.content

	created, err := s.questions.Add(ctx, question, session.AccountID)
	if err != nil {
		span.RecordError(err)
		return domain.Question{}, err
	}
	return created, nil
}

// Update verifies ownership, censors the new title and content, and
// persists the change.
func (s *QuestionService) Update(ctx context.Context, session domain.Session, id int, question domain.Question) (domain.Question, error) {
	ctx, span := middleware.StartSpan(ctx, "question.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.requireOwner(ctx, id, session); err != nil {
		span.RecordError(err)
		return domain.Question{}, err
	}

	censored, err := s.censorQuestion(ctx, question.Title, question.Content)
	if err != nil {
		span.RecordError(err)
		return domain.Question{}, err
	}
	question.Title, question.Content = censored.title, censored.content

	updated, err := s.questions.Update(ctx, question, id)
	if err != nil {
		span.RecordError(err)
		return domain.Question{}, err
	}
	return updated, nil
}

// Delete verifies ownership and removes the question.
func (s *QuestionService) Delete(ctx context.Context, session domain.Session, id int) error {
	ctx, span := middleware.StartSpan(ctx, "question.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.requireOwner(ctx, id, session); err != nil {
		span.RecordError(err)
		return err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *QuestionService) requireOwner(ctx context.Context, id int, session domain.Session) error {
	owner, err := s.questions.IsOwner(ctx, id, session.AccountID)
	if err != nil {
		return err
	}
	if !owner {
		return apperr.Unauthorized()
	}
	return nil
}

type censoredQuestion struct {
	title   string
	content string
}

// censorQuestion runs both moderation calls concurrently; the first failure
// cancels the other.
func (s *QuestionService) censorQuestion(ctx context.Context, title, content string) (censoredQuestion, error) {
	var out censoredQuestion

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.title, err = s.censor.Censor(ctx, title)
		return err
	})
	g.Go(func() error {
		var err error
		out.content, err = s.censor.Censor(ctx, content)
		return err
	})
	if err := g.Wait(); err != nil {
		return censoredQuestion{}, err
	}

	return out, nil
}
