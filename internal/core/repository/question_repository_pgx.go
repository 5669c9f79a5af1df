package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// PgxQuestionRepository implements domain.QuestionRepository using pgx.
type PgxQuestionRepository struct {
	db DB
}

// NewQuestionRepository creates a new PgxQuestionRepository.
func NewQuestionRepository(db DB) *PgxQuestionRepository {
	return &PgxQuestionRepository{db: db}
}

// List returns questions within the given pagination window. A nil limit
// binds as NULL, which Postgres treats as no limit.
func (r *PgxQuestionRepository) List(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	query := `SELECT id, title, content, tags, account_id FROM questions LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, apperr.DatabaseQuery(err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.Tags, &q.AccountID); err != nil {
			return nil, apperr.DatabaseQuery(err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.DatabaseQuery(err)
	}

	return questions, nil
}

// Add inserts a new question owned by accountID.
func (r *PgxQuestionRepository) Add(ctx context.Context, question domain.NewQuestion, accountID int) (domain.Question, error) {
	query := `INSERT INTO questions (title, content, tags, account_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, tags, account_id`

	var row domain.Question
	err := r.db.QueryRow(ctx, query, question.Title, question.Content, question.Tags, accountID).
		Scan(&row.ID, &row.Title, &row.Content, &row.Tags, &row.AccountID)
	if err != nil {
		return domain.Question{}, apperr.DatabaseQuery(err)
	}

	return row, nil
}

// Update replaces title, content and tags of the question with the given id.
func (r *PgxQuestionRepository) Update(ctx context.Context, question domain.Question, id int) (domain.Question, error) {
	query := `UPDATE questions SET title = $1, content = $2, tags = $3
		WHERE id = $4
		RETURNING id, title, content, tags, account_id`

	var row domain.Question
	err := r.db.QueryRow(ctx, query, question.Title, question.Content, question.Tags, id).
		Scan(&row.ID, &row.Title, &row.Content, &row.Tags, &row.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, apperr.QuestionNotFound()
		}
		return domain.Question{}, apperr.DatabaseQuery(err)
	}

	return row, nil
}

// Delete removes the question with the given id.
func (r *PgxQuestionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return apperr.DatabaseQuery(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.QuestionNotFound()
	}
	return nil
}

// IsOwner reports whether the question belongs to the given account.
func (r *PgxQuestionRepository) IsOwner(ctx context.Context, id, accountID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1 AND account_id = $2)`

	var owner bool
	if err := r.db.QueryRow(ctx, query, id, accountID).Scan(&owner); err != nil {
		return false, apperr.DatabaseQuery(err)
	}
	return owner, nil
}
