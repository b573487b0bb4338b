package session

import "errors"

// ErrNotConfigured is returned by every auth operation when no identity
// provider was wired in. Callers must see this explicitly rather than a
// silent no-op.
var ErrNotConfigured = errors.New("session: identity provider not configured")

// ErrNotAuthenticated is returned when a write requires a signed-in identity
// and none is present.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// AuthError is a credential-level failure surfaced from the identity
// provider. It is reported to the caller as-is and never retried.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "session: " + e.Reason }

var (
	ErrDuplicateEmail     = &AuthError{Reason: "email is already registered"}
	ErrWeakPassword       = &AuthError{Reason: "password must be at least 6 characters"}
	ErrInvalidCredentials = &AuthError{Reason: "invalid email or password"}
)
