package token

import (
	"encoding/base64"
	"testing"
	"time"

	"snapapp/internal/domain"
	"snapapp/internal/pkg/sessionkey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeypair(t *testing.T) *sessionkey.Keypair {
	t.Helper()
	kp, err := sessionkey.Generate(sessionkey.MinBits)
	require.NoError(t, err)
	return kp
}

func TestAccess_RoundTrip(t *testing.T) {
	kp := newKeypair(t)
	in := Access{UserID: uuid.New(), Role: domain.RoleRealtor, IssuedOn: Timestamp(time.Now())}

	s, err := Encode(in, kp)
	require.NoError(t, err)

	out, err := DecodeAccess(s, kp)
	require.NoError(t, err)

	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Role, out.Role)
	assert.True(t, in.IssuedOn.Equal(out.IssuedOn))
}

func TestRefresh_RoundTrip(t *testing.T) {
	kp := newKeypair(t)
	in := Refresh{ID: uuid.New(), UserID: uuid.New(), ExpiresOn: Timestamp(time.Now().Add(time.Hour))}

	s, err := Encode(in, kp)
	require.NoError(t, err)

	out, err := DecodeRefresh(s, kp)
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.UserID, out.UserID)
	assert.True(t, in.ExpiresOn.Equal(out.ExpiresOn))
}

func TestEncode_SamePayloadDifferentCiphertext(t *testing.T) {
	kp := newKeypair(t)
	in := Access{UserID: uuid.New(), Role: domain.RoleClient, IssuedOn: Timestamp(time.Now())}

	a, err := Encode(in, kp)
	require.NoError(t, err)
	b, err := Encode(in, kp)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecode_Failures(t *testing.T) {
	kp := newKeypair(t)
	other := newKeypair(t)

	access, err := Encode(Access{UserID: uuid.New(), Role: domain.RoleClient, IssuedOn: Timestamp(time.Now())}, kp)
	require.NoError(t, err)
	refresh, err := Encode(Refresh{ID: uuid.New(), UserID: uuid.New(), ExpiresOn: Timestamp(time.Now())}, kp)
	require.NoError(t, err)
	incomplete, err := Encode(Access{UserID: uuid.New(), Role: domain.RoleClient}, kp)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(access)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name   string
		decode func() error
	}{
		{"empty", func() error { _, err := DecodeAccess("", kp); return err }},
		{"bad base64", func() error { _, err := DecodeAccess("***", kp); return err }},
		{"wrong key", func() error { _, err := DecodeAccess(access, other); return err }},
		{"nil key", func() error { _, err := DecodeAccess(access, nil); return err }},
		{"tampered", func() error { _, err := DecodeAccess(tampered, kp); return err }},
		{"refresh as access", func() error { _, err := DecodeAccess(refresh, kp); return err }},
		{"access as refresh", func() error { _, err := DecodeRefresh(access, kp); return err }},
		{"missing field", func() error { _, err := DecodeAccess(incomplete, kp); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.decode(), ErrDecode)
		})
	}
}

func TestTimestamp_TruncatesToMicroseconds(t *testing.T) {
	in := time.Date(2026, 10, 17, 12, 0, 0, 123456789, time.FixedZone("x", 3600))

	out := Timestamp(in)

	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 123456000, out.Nanosecond())
}
