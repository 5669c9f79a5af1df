package domain

import "context"

// Account is the identity record. ID is nil until the database assigns one.
// Password carries the plaintext only between request binding and the
// credential hasher; the value persisted is always the encoded hash.
type Account struct {
	ID       *int   `json:"id"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountRepository defines the data-access contract for account operations.
// Implementations live in internal/core/repository and surface failures as
// apperr values, never raw driver errors.
type AccountRepository interface {
	// Add inserts a new account and returns it with the generated id.
	// A uniqueness violation on the email surfaces as a duplicate-record error.
	Add(ctx context.Context, account Account) (Account, error)

	// GetByEmail returns the account matching the given email, or an
	// account-not-found error.
	GetByEmail(ctx context.Context, email string) (Account, error)
}
