package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingAuthHeader  = errors.New("missing authorization header")
	ErrMissingUserID      = errors.New("missing user id")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMalformedToken     = errors.New("malformed token")
	ErrTokenEpochMismatch = errors.New("token does not match current session")
	ErrSessionExpired     = errors.New("session expired")
	ErrRoleDenied         = errors.New("role denied")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrMissingContent     = errors.New("missing request content")
	ErrInvalidContent     = errors.New("invalid request content")
)
