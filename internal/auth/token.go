package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/minhvu/qna-service/internal/apperr"
	"github.com/minhvu/qna-service/internal/core/domain"
)

// KeySize is the required symmetric key length, AES-256.
const KeySize = 32

// DefaultTokenTTL is how long an issued token stays valid. Re-login is the
// only refresh mechanism.
const DefaultTokenTTL = 24 * time.Hour

// Issuer seals and opens session tokens under one symmetric key.
//
// The key is supplied by configuration at startup and never mutated; any
// number of goroutines may issue and verify concurrently without
// synchronization. Key rotation is out of scope (a token outlives a restart
// only if the same key is supplied again), but nothing here assumes the key
// is a compile-time constant, so a rotating holder could replace this type
// without changing its API.
type Issuer struct {
	aead cipher.AEAD
	ttl  time.Duration

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewIssuer builds an Issuer from a 32-byte key. A zero ttl falls back to
// DefaultTokenTTL.
func NewIssuer(key []byte, ttl time.Duration) (*Issuer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("token key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{aead: aead, ttl: ttl, now: time.Now}, nil
}

// Issue seals a session for the given account, valid from now until
// now + ttl. The token is nonce||ciphertext, base64url encoded; the claims
// are both encrypted and authenticated, so a bit flip anywhere makes Verify
// fail.
func (i *Issuer) Issue(accountID int) (string, error) {
	now := i.now().UTC().Truncate(time.Second)
	session := domain.Session{
		AccountID: accountID,
		Nbf:       now,
		Exp:       now.Add(i.ttl),
	}

	claims, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("serialize claims: %w", err)
	}

	nonce := make([]byte, i.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := i.aead.Seal(nonce, nonce, claims, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Verify opens a token and returns the embedded session. Every failure
// (undecodable input, wrong key, tampered bytes, malformed claims, a token
// not yet valid or already expired) surfaces as the single
// cannot-decrypt-token error, with no hint of which check rejected it.
func (i *Issuer) Verify(token string) (domain.Session, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(sealed) < i.aead.NonceSize() {
		return domain.Session{}, apperr.CannotDecryptToken()
	}

	nonce, ciphertext := sealed[:i.aead.NonceSize()], sealed[i.aead.NonceSize():]
	claims, err := i.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return domain.Session{}, apperr.CannotDecryptToken()
	}

	var session domain.Session
	if err := json.Unmarshal(claims, &session); err != nil {
		return domain.Session{}, apperr.CannotDecryptToken()
	}

	now := i.now()
	if now.Before(session.Nbf) || !now.Before(session.Exp) {
		return domain.Session{}, apperr.CannotDecryptToken()
	}

	return session, nil
}

// ParseKey decodes a base64-encoded symmetric key from configuration.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("token key is not valid base64")
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("token key must decode to %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}
