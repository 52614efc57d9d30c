package auth

import "errors"

// Common authentication service errors.
//
// Token validation deliberately collapses every failure mode into
// ErrInvalidToken: callers (and therefore clients) cannot tell an expired
// token from a malformed one or a bad signature. The distinction only
// survives in debug logs.
var (
	// ErrInvalidToken indicates the token failed verification for any reason:
	// malformed, expired, bad signature, or wrong token type.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
