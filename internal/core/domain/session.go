package domain

import "time"

// Session is the verified identity and validity window of one request.
// It is derived from a sealed token by the authorization gate, lives only
// for the duration of the request, and is never persisted.
type Session struct {
	AccountID int       `json:"account_id"`
	Nbf       time.Time `json:"nbf"`
	Exp       time.Time `json:"exp"`
}
