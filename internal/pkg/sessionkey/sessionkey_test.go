package sessionkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RejectsWeakKeys(t *testing.T) {
	_, err := Generate(1024)
	assert.Error(t, err)
}

func TestKeypair_BytesRoundTrip(t *testing.T) {
	kp, err := Generate(MinBits)
	require.NoError(t, err)

	restored, err := Parse(kp.Bytes())
	require.NoError(t, err)

	assert.Equal(t, kp.Bytes(), restored.Bytes())
}

func TestKeypair_EncryptDecrypt(t *testing.T) {
	kp, err := Generate(MinBits)
	require.NoError(t, err)

	ct, err := kp.Encrypt([]byte(`{"hello":"world"}`))
	require.NoError(t, err)

	restored, err := Parse(kp.Bytes())
	require.NoError(t, err)
	pt, err := restored.Decrypt(ct)
	require.NoError(t, err)

	assert.Equal(t, `{"hello":"world"}`, string(pt))
}

func TestKeypair_EncryptIsRandomized(t *testing.T) {
	kp, err := Generate(MinBits)
	require.NoError(t, err)

	a, err := kp.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := kp.Encrypt([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestKeypair_DecryptWithOtherKeyFails(t *testing.T) {
	kp1, err := Generate(MinBits)
	require.NoError(t, err)
	kp2, err := Generate(MinBits)
	require.NoError(t, err)

	ct, err := kp1.Encrypt([]byte("payload"))
	require.NoError(t, err)

	_, err = kp2.Decrypt(ct)
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Parse([]byte("not a key"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestKeypair_MaxMessageSize(t *testing.T) {
	kp, err := Generate(MinBits)
	require.NoError(t, err)

	assert.Equal(t, 190, kp.MaxMessageSize())

	_, err = kp.Encrypt(make([]byte, kp.MaxMessageSize()+1))
	assert.Error(t, err)
}
