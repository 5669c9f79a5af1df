// Package apperr defines the closed set of failure kinds the service can
// produce and the terminal handler that renders them.
//
// Every fallible operation returns an *Error constructed at the point of
// failure. The value travels through the request pipeline unchanged (callers
// add context with fmt.Errorf("...: %w") but never re-classify) and is
// consumed exactly once, by Respond, which picks the HTTP status and the
// client-safe message. Internal detail such as raw driver errors or upstream
// bodies is reachable through Unwrap for logging and never enters the
// response.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind enumerates every failure the service can surface.
type Kind uint8

const (
	// KindParse is a query or path value that failed to parse.
	KindParse Kind = iota
	// KindMissingParameters is a required parameter that was not supplied.
	KindMissingParameters
	// KindInvalidBody is a request body that could not be deserialized.
	KindInvalidBody
	// KindQuestionNotFound is a question id that matched no row.
	KindQuestionNotFound
	// KindAccountNotFound is an email that matched no account.
	KindAccountNotFound
	// KindDatabaseQuery is a query that could not be executed.
	KindDatabaseQuery
	// KindDuplicateRecord is a uniqueness-constraint violation.
	KindDuplicateRecord
	// KindUpstreamTransport is a moderation API call that never completed.
	KindUpstreamTransport
	// KindUpstreamClient is a 4xx answer from the moderation API.
	KindUpstreamClient
	// KindUpstreamServer is a 5xx answer from the moderation API.
	KindUpstreamServer
	// KindCredentialHash is a stored credential hash that could not be decoded.
	KindCredentialHash
	// KindWrongPassword is a well-formed credential that did not match.
	KindWrongPassword
	// KindCannotDecryptToken covers every session-token failure: missing,
	// malformed, tampered, wrong key, not yet valid, expired. Clients must
	// not be able to probe which check rejected them.
	KindCannotDecryptToken
	// KindUnauthorized is an authenticated caller acting on a resource it
	// does not own.
	KindUnauthorized
)

// Error is the single failure type threaded through the pipeline.
type Error struct {
	Kind  Kind
	cause error
}

// New wraps cause under the given kind. A nil cause is fine for kinds that
// carry no detail.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func Parse(cause error) *Error          { return New(KindParse, cause) }
func MissingParameters() *Error         { return New(KindMissingParameters, nil) }
func InvalidBody(cause error) *Error    { return New(KindInvalidBody, cause) }
func QuestionNotFound() *Error          { return New(KindQuestionNotFound, nil) }
func AccountNotFound() *Error           { return New(KindAccountNotFound, nil) }
func DatabaseQuery(cause error) *Error  { return New(KindDatabaseQuery, cause) }
func Duplicate(cause error) *Error      { return New(KindDuplicateRecord, cause) }
func Transport(cause error) *Error      { return New(KindUpstreamTransport, cause) }
func CredentialHash(cause error) *Error { return New(KindCredentialHash, cause) }
func WrongPassword() *Error             { return New(KindWrongPassword, nil) }
func CannotDecryptToken() *Error        { return New(KindCannotDecryptToken, nil) }
func Unauthorized() *Error              { return New(KindUnauthorized, nil) }

// Upstream classifies a non-2xx moderation API answer by its status code.
// The status and body stay in the cause, for the log only.
func Upstream(status int, message string) *Error {
	kind := KindUpstreamServer
	if status < http.StatusInternalServerError {
		kind = KindUpstreamClient
	}
	return New(kind, fmt.Errorf("API error %d: %s", status, message))
}

// Error returns the internal, loggable description. Not for clients; the
// response body comes from Message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Status returns the HTTP status code this kind maps to.
func (e *Error) Status() int {
	switch e.Kind {
	case KindQuestionNotFound, KindAccountNotFound:
		return http.StatusNotFound
	case KindInvalidBody, KindDatabaseQuery, KindDuplicateRecord:
		return http.StatusUnprocessableEntity
	case KindUpstreamTransport, KindUpstreamClient, KindUpstreamServer:
		return http.StatusInternalServerError
	case KindUnauthorized:
		return http.StatusForbidden
	default:
		// Parse, missing parameters, credential and token failures all
		// share one uninformative status.
		return http.StatusRequestedRangeNotSatisfiable
	}
}

// Message returns the client-safe response text. Fixed strings except for
// parse and body errors, which echo the parser.
func (e *Error) Message() string {
	switch e.Kind {
	case KindParse:
		return fmt.Sprintf("invalid parameter: %v", e.cause)
	case KindMissingParameters:
		return "missing parameter"
	case KindInvalidBody:
		return fmt.Sprintf("invalid request body: %v", e.cause)
	case KindQuestionNotFound:
		return "question not found"
	case KindAccountNotFound:
		return "account not found"
	case KindDatabaseQuery:
		return "cannot update data"
	case KindDuplicateRecord:
		return "account already exists"
	case KindUpstreamTransport, KindUpstreamClient, KindUpstreamServer:
		return "internal server error"
	case KindCredentialHash:
		return "cannot verify password"
	case KindWrongPassword:
		return "wrong password"
	case KindCannotDecryptToken:
		return "cannot decrypt token"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal server error"
	}
}

// serverFault reports whether the failure is attributable to the service
// rather than the caller. Drives log severity.
func (e *Error) serverFault() bool {
	switch e.Kind {
	case KindDatabaseQuery, KindUpstreamTransport, KindUpstreamClient,
		KindUpstreamServer, KindCredentialHash:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse_error"
	case KindMissingParameters:
		return "missing_parameters"
	case KindInvalidBody:
		return "invalid_body"
	case KindQuestionNotFound:
		return "question_not_found"
	case KindAccountNotFound:
		return "account_not_found"
	case KindDatabaseQuery:
		return "database_query_error"
	case KindDuplicateRecord:
		return "duplicate_record"
	case KindUpstreamTransport:
		return "upstream_transport_error"
	case KindUpstreamClient:
		return "upstream_client_error"
	case KindUpstreamServer:
		return "upstream_server_error"
	case KindCredentialHash:
		return "credential_hash_error"
	case KindWrongPassword:
		return "wrong_password"
	case KindCannotDecryptToken:
		return "cannot_decrypt_token"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}
