package password

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	h := NewHasher(1000)
	salt := bytes.Repeat([]byte{7}, SaltSize)

	first := h.Hash("p@ssw0rd", salt)
	second := h.Hash("p@ssw0rd", salt)

	assert.Equal(t, first, second)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)
}

func TestHash_DifferentSaltsDiffer(t *testing.T) {
	h := NewHasher(1000)
	salt1 := bytes.Repeat([]byte{1}, SaltSize)
	salt2 := bytes.Repeat([]byte{2}, SaltSize)

	assert.NotEqual(t, h.Hash("secret", salt1), h.Hash("secret", salt2))
}

func TestHash_IterationsChangeOutput(t *testing.T) {
	salt := bytes.Repeat([]byte{3}, SaltSize)

	assert.NotEqual(t, NewHasher(1000).Hash("secret", salt), NewHasher(2000).Hash("secret", salt))
}

func TestHash_PanicsOnWrongSaltLength(t *testing.T) {
	h := NewHasher(1000)

	assert.Panics(t, func() { h.Hash("secret", []byte("short")) })
}

func TestVerify(t *testing.T) {
	h := NewHasher(1000)
	salt, err := GenerateSalt()
	require.NoError(t, err)
	stored := h.Hash("correct horse", salt)

	assert.True(t, h.Verify("correct horse", salt, stored))
	assert.False(t, h.Verify("battery staple", salt, stored))
	assert.False(t, h.Verify("correct horse", salt, ""))
	assert.False(t, h.Verify("correct horse", []byte("bad"), stored))
}

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestNewHasher_DefaultsIterations(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewHasher(0).iterations)
}
