package domain

import (
	"time"

	"github.com/google/uuid"
)

// Login is the single session record a user may hold.
//
// CryptoKeys is the serialized session keypair. Every token issued to the
// user is sealed with it, so deleting the record revokes all of them.
// CreatedOn marks the current issuance epoch: only an access token whose
// issuedOn equals it is accepted.
type Login struct {
	ID             *int64
	UserID         uuid.UUID
	CryptoKeys     []byte
	RefreshTokenID uuid.UUID
	ExpiresOn      time.Time
	CreatedOn      time.Time
}

func (l *Login) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresOn)
}

// LoginInfo is a user joined with their login record. Login is nil when the
// user has no live session.
type LoginInfo struct {
	User  User
	Login *Login
}
