// Package token seals access and refresh token payloads with a session keypair.
//
// Tokens are base64(RSA-OAEP(json(payload))). Clients treat them as opaque strings.
// Decoding failures are deliberately collapsed into ErrDecode so callers cannot
// tell a bad encoding from a wrong key or a schema mismatch.
package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"snapapp/internal/domain"
	"snapapp/internal/pkg/sessionkey"

	"github.com/google/uuid"
)

var ErrDecode = errors.New("token: invalid token")

// Payload is implemented by Access and Refresh.
type Payload interface {
	complete() bool
}

// Access proves identity and role for one issuance epoch.
type Access struct {
	UserID   uuid.UUID   `json:"userId"`
	Role     domain.Role `json:"role"`
	IssuedOn time.Time   `json:"issuedOn"`
}

func (a Access) complete() bool {
	return a.UserID != uuid.Nil && a.Role.Valid() && !a.IssuedOn.IsZero()
}

// Refresh is a single-use credential for minting a new token pair.
type Refresh struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresOn time.Time `json:"expiresOn"`
}

func (r Refresh) complete() bool {
	return r.ID != uuid.Nil && r.UserID != uuid.Nil && !r.ExpiresOn.IsZero()
}

// Timestamp normalizes t to the precision every supported database keeps,
// so an issuance time survives a storage round-trip unchanged.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func Encode(p Payload, kp *sessionkey.Keypair) (string, error) {
	if kp == nil {
		return "", errors.New("token: nil keypair")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("token: marshal: %w", err)
	}
	ct, err := kp.Encrypt(data)
	if err != nil {
		return "", fmt.Errorf("token: encrypt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

func DecodeAccess(s string, kp *sessionkey.Keypair) (Access, error) {
	var a Access
	if err := decode(s, kp, &a); err != nil {
		return Access{}, err
	}
	return a, nil
}

func DecodeRefresh(s string, kp *sessionkey.Keypair) (Refresh, error) {
	var r Refresh
	if err := decode(s, kp, &r); err != nil {
		return Refresh{}, err
	}
	return r, nil
}

func decode(s string, kp *sessionkey.Keypair, dst Payload) error {
	if kp == nil || s == "" {
		return ErrDecode
	}
	ct, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ErrDecode
	}
	pt, err := kp.Decrypt(ct)
	if err != nil {
		return ErrDecode
	}

	dec := json.NewDecoder(bytes.NewReader(pt))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return ErrDecode
	}
	if dec.More() || !dst.complete() {
		return ErrDecode
	}
	return nil
}
