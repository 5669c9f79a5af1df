package repository

import (
	"context"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// PgxAnswerRepository implements domain.AnswerRepository using pgx.
type PgxAnswerRepository struct {
	db DB
}

// NewAnswerRepository creates a new PgxAnswerRepository.
func NewAnswerRepository(db DB) *PgxAnswerRepository {
	return &PgxAnswerRepository{db: db}
}

// Add inserts a new answer owned by accountID.
func (r *PgxAnswerRepository) Add(ctx context.Context, answer domain.NewAnswer, accountID int) (domain.Answer, error) {
	query := `INSERT INTO answers (content, corresponding_question, account_id)
		VALUES ($1, $2, $3)
		RETURNING id, content, corresponding_question, account_id`

	var row domain.Answer
	err := r.db.QueryRow(ctx, query, answer.Content, answer.QuestionID, accountID).
		Scan(&row.ID, &row.Content, &row.QuestionID, &row.AccountID)
	if err != nil {
		return domain.Answer{}, apperr.DatabaseQuery(err)
	}

	return row, nil
}
