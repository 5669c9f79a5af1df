package domain

import "context"

// Question is a posted question with its owning account.
type Question struct {
	ID        int      `json:"id"`
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags"`
	AccountID int      `json:"account_id"`
}

// NewQuestion is the client-supplied shape before persistence assigns an id.
type NewQuestion struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// QuestionRepository defines the data-access contract for question operations.
type QuestionRepository interface {
	// List returns questions within the given pagination window.
	List(ctx context.Context, p Pagination) ([]Question, error)

	// Add inserts a new question owned by accountID and returns it with
	// the generated id.
	Add(ctx context.Context, question NewQuestion, accountID int) (Question, error)

	// Update replaces title, content and tags of the question with the
	// given id. Surfaces question-not-found when the id matches no row.
	Update(ctx context.Context, question Question, id int) (Question, error)

	// Delete removes the question with the given id. Surfaces
	// question-not-found when the id matches no row.
	Delete(ctx context.Context, id int) error

	// IsOwner reports whether the question belongs to the given account.
	IsOwner(ctx context.Context, id, accountID int) (bool, error)
}
