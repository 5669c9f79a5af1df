package domain

import "context"

// Answer is a reply to a question.
type Answer struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	QuestionID int    `json:"question_id"`
	AccountID  int    `json:"account_id"`
}

// NewAnswer is the client-supplied shape before persistence assigns an id.
// Accepted both as JSON and as form data.
type NewAnswer struct {
	Content    string `json:"content" form:"content" binding:"required"`
	QuestionID int    `json:"question_id" form:"question_id" binding:"required"`
}

// AnswerRepository defines the data-access contract for answer operations.
type AnswerRepository interface {
	// Add inserts a new answer owned by accountID and returns it with the
	// generated id.
	Add(ctx context.Context, answer NewAnswer, accountID int) (Answer, error)
}
