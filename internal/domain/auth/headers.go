package auth

import (
	"strings"

	"github.com/google/uuid"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-UserId"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingAuthHeader
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", ErrMissingAuthHeader
	}
	return tok, nil
}

func ParseUserID(header string) (uuid.UUID, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return uuid.Nil, ErrMissingUserID
	}
	id, err := uuid.Parse(header)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrMissingUserID
	}
	return id, nil
}
