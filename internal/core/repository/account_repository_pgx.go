package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// PgxAccountRepository implements domain.AccountRepository using pgx.
type PgxAccountRepository struct {
	db DB
}

// NewAccountRepository creates a new PgxAccountRepository.
func NewAccountRepository(db DB) *PgxAccountRepository {
	return &PgxAccountRepository{db: db}
}

// Add inserts a new account and returns it with the generated id.
// The password field of the given account must already be hash-encoded;
// this layer stores whatever it is handed.
func (r *PgxAccountRepository) Add(ctx context.Context, account domain.Account) (domain.Account, error) {
	query := `INSERT INTO accounts (email, password) VALUES ($1, $2) RETURNING id, email, password`

	var row domain.Account
	row.ID = new(int)
	err := r.db.QueryRow(ctx, query, account.Email, account.Password).Scan(
		row.ID, &row.Email, &row.Password,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, apperr.Duplicate(err)
		}
		return domain.Account{}, apperr.DatabaseQuery(err)
	}

	return row, nil
}

// GetByEmail returns the account matching the given email.
func (r *PgxAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	query := `SELECT id, email, password FROM accounts WHERE email = $1`

	var row domain.Account
	row.ID = new(int)
	err := r.db.QueryRow(ctx, query, email).Scan(row.ID, &row.Email, &row.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, apperr.AccountNotFound()
		}
		return domain.Account{}, apperr.DatabaseQuery(err)
	}

	return row, nil
}
