package realty

import "errors"

var (
	ErrUserExists      = errors.New("user already exists")
	ErrClientNotFound  = errors.New("client not found")
	ErrPropertyExists  = errors.New("property already exists")
	ErrMissingContent  = errors.New("missing request content")
	ErrInvalidContent  = errors.New("invalid request content")
	ErrNotClaimRealtor = errors.New("caller is not the property realtor")
)
