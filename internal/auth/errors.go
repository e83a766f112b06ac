package auth

import "errors"

// Domain errors for token handling.
var (
	// ErrTokenInvalid is returned for malformed, forged or incomplete tokens.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrSecretRequired is returned when signing or verifying without a secret.
	ErrSecretRequired = errors.New("token secret is required")
)
