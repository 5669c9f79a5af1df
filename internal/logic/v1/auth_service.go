// Package v1 implements the business rules behind the API: registration,
// login, and question/answer management with profanity filtering.
//
// Services depend on repository interfaces injected via constructors and
// never touch SQL directly. Every failure is an apperr value constructed at
// the point of failure and passed through unchanged; the web layer hands it
// to apperr.Respond without inspecting it.
package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/auth"
	"github.com/minhvu/qna-service/internal/core/domain"
	"github.com/minhvu/qna-service/middleware"
)

// AuthService implements registration and login.
type AuthService struct {
	accounts domain.AccountRepository
	issuer   *auth.Issuer
}

// NewAuthService creates an AuthService with the given dependencies.
func NewAuthService(accounts domain.AccountRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{accounts: accounts, issuer: issuer}
}

// Register hashes the plaintext password and persists the account. The
// plaintext never crosses this boundary: the stored and returned account
// carry only the encoded hash.
func (s *AuthService) Register(ctx context.Context, account domain.Account) (domain.Account, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	encoded, err := auth.HashPassword([]byte(account.Password))
	if err != nil {
		span.RecordError(err)
		if err == auth.ErrPasswordTooLong {
			return domain.Account{}, apperr.InvalidBody(err)
		}
		return domain.Account{}, err
	}
	account.Password = encoded

	created, err := s.accounts.Add(ctx, account)
	if err != nil {
		span.RecordError(err)
		return domain.Account{}, err
	}

	span.SetAttributes(attribute.Bool("registration.success", true))
	return created, nil
}

// Login verifies the credentials against the stored hash and issues a
// session token. A correct computation that simply does not match surfaces
// as wrong-password; an undecodable stored hash as a credential-hash error.
func (s *AuthService) Login(ctx context.Context, credentials domain.Account) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	account, err := s.accounts.GetByEmail(ctx, credentials.Email)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	verified, err := auth.VerifyPassword(account.Password, []byte(credentials.Password))
	if err != nil {
		span.RecordError(err)
		return "", apperr.CredentialHash(err)
	}
	if !verified {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", apperr.WrongPassword()
	}

	token, err := s.issuer.Issue(*account.ID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.Bool("auth.success", true))
	span.AddEvent("user.authenticated")
	return token, nil
}
