package v1

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// starCensor replaces a fixed word, standing in for the moderation API.
type starCensor struct{ fail error }

func (c starCensor) Censor(_ context.Context, content string) (string, error) {
	if c.fail != nil {
		return "", c.fail
	}
	return strings.ReplaceAll(content, "damn", "****"), nil
}

type fakeQuestionRepo struct {
	byID   map[int]domain.Question
	nextID int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{byID: map[int]domain.Question{}, nextID: 1}
}

func (r *fakeQuestionRepo) List(_ context.Context, p domain.Pagination) ([]domain.Question, error) {
	out := []domain.Question{}
	for _, q := range r.byID {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) Add(_ context.Context, question domain.NewQuestion, accountID int) (domain.Question, error) {
	q := domain.Question{
		ID:        r.nextID,
		Title:     question.Title,
		Content:   question.Content,
		Tags:      question.Tags,
		AccountID: accountID,
	}
	r.byID[q.ID] = q
	r.nextID++
	return q, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question domain.Question, id int) (domain.Question, error) {
	existing, ok := r.byID[id]
	if !ok {
		return domain.Question{}, apperr.QuestionNotFound()
	}
	existing.Title = question.Title
	existing.Content = question.Content
	existing.Tags = question.Tags
	r.byID[id] = existing
	return existing, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.QuestionNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeQuestionRepo) IsOwner(_ context.Context, id, accountID int) (bool, error) {
	q, ok := r.byID[id]
	return ok && q.AccountID == accountID, nil
}

func session(accountID int) domain.Session {
	return domain.Session{AccountID: accountID}
}

func TestQuestionService_Add_CensorsTitleAndContent(t *testing.T) {
	t.Parallel()

	repo := newFakeQuestionRepo()
	service := NewQuestionService(repo, starCensor{})

	created, err := service.Add(context.Background(), session(42), domain.NewQuestion{
		Title:   "why the damn thing breaks",
		Content: "the damn build fails",
		Tags:    []string{"build"},
	})
	require.NoError(t, err)

	assert.Equal(t, "why the **** thing breaks", created.Title)
	assert.Equal(t, "the **** build fails", created.Content)
	assert.Equal(t, 42, created.AccountID)
	assert.Equal(t, created, repo.byID[created.ID])
}

func TestQuestionService_Add_CensorFailureBlocksPersistence(t *testing.T) {
	t.Parallel()

	repo := newFakeQuestionRepo()
	service := NewQuestionService(repo, starCensor{fail: apperr.Upstream(503, "overloaded")})

	_, err := service.Add(context.Background(), session(42), domain.NewQuestion{Title: "t", Content: "c"})
	assert.Equal(t, apperr.KindUpstreamServer, kindOf(t, err))
	assert.Empty(t, repo.byID, "nothing may be stored when moderation fails")
}

func TestQuestionService_Update_Owner(t *testing.T) {
	t.Parallel()

	repo := newFakeQuestionRepo()
	service := NewQuestionService(repo, starCensor{})

	created, err := service.Add(context.Background(), session(42), domain.NewQuestion{Title: "old", Content: "old"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), session(42), created.ID, domain.Question{
		Title:   "new damn title",
		Content: "new content",
	})
	require.NoError(t, err)
	assert.Equal(t, "new **** title", updated.Title)
	assert.Equal(t, 42, updated.AccountID)
}

func TestQuestionService_Update_NotOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeQuestionRepo()
	service := NewQuestionService(repo, starCensor{})

	created, err := service.Add(context.Background(), session(42), domain.NewQuestion{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), session(7), created.ID, domain.Question{Title: "x", Content: "y"})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(t, err))

	assert.Equal(t, "t", repo.byID[created.ID].Title, "the question must stay untouched")
}

func TestQuestionService_Delete(t *testing.T) {
	t.Parallel()

	repo := newFakeQuestionRepo()
	service := NewQuestionService(repo, starCensor{})

	created, err := service.Add(context.Background(), session(42), domain.NewQuestion{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), session(7), created.ID)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(t, err))

	require.NoError(t, service.Delete(context.Background(), session(42), created.ID))
	assert.Empty(t, repo.byID)
}

type fakeAnswerRepo struct {
	added []domain.Answer
}

func (r *fakeAnswerRepo) Add(_ context.Context, answer domain.NewAnswer, accountID int) (domain.Answer, error) {
	a := domain.Answer{
		ID:         len(r.added) + 1,
		Content:    answer.Content,
		QuestionID: answer.QuestionID,
		AccountID:  accountID,
	}
	r.added = append(r.added, a)
	return a, nil
}

func TestAnswerService_Add(t *testing.T) {
	t.Parallel()

	repo := &fakeAnswerRepo{}
	service := NewAnswerService(repo, starCensor{})

	created, err := service.Add(context.Background(), session(42), domain.NewAnswer{
		Content:    "that damn compiler flag",
		QuestionID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "that **** compiler flag", created.Content)
	assert.Equal(t, 1, created.QuestionID)
	assert.Equal(t, 42, created.AccountID)
}
