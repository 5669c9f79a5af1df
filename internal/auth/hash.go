// Package auth holds the credential hasher and the session-token
// issuer/verifier, the two cryptographic primitives of the service.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost profile. Fixed; the parameters are embedded in every encoded
// hash, so verification of old hashes survives a future profile change.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// maxPasswordLen caps hasher input. Anything shorter, including the empty
// password, is valid input.
const maxPasswordLen = 1 << 20

// maxVerifyMemory caps the memory cost (in KiB) accepted from a stored
// hash, 1 GiB. Far above any profile this service writes.
const maxVerifyMemory = 1 << 20

// ErrPasswordTooLong is returned for inputs above maxPasswordLen.
var ErrPasswordTooLong = errors.New("password exceeds maximum length")

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed credential hash")

// HashPassword derives an argon2id hash under a fresh random salt and
// returns it in self-describing encoded form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 hash>
//
// Verification needs nothing but the encoded string and the candidate.
func HashPassword(password []byte) (string, error) {
	if len(password) > maxPasswordLen {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// VerifyPassword recomputes the hash from the parameters and salt embedded
// in encoded and compares in constant time. A correct computation that does
// not match returns (false, nil); an error means the stored hash itself is
// unusable. Neither the candidate nor the hash is ever logged here.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	// Degenerate parameters make argon2 panic; a memory cost beyond any
	// profile this service ever wrote is a corrupted row, not a request
	// for a multi-gigabyte derivation.
	if time < 1 || threads < 1 || memory < 8*uint32(threads) || memory > maxVerifyMemory {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrMalformedHash
	}
	if len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey(password, salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
