// Package sessionkey manages the per-user RSA keypair that seals session tokens.
//
// A keypair is persisted as opaque bytes (PKCS#1 DER of the private key, which
// carries the public half as well) on the user's login record.
package sessionkey

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
)

// MinBits is the smallest modulus accepted for session keys.
const MinBits = 2048

var ErrInvalidKey = errors.New("sessionkey: invalid key material")

type Keypair struct {
	key *rsa.PrivateKey
}

// Generate creates a fresh keypair of the given modulus size.
func Generate(bits int) (*Keypair, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("sessionkey: %d bits is below the %d bit minimum", bits, MinBits)
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("sessionkey: generate: %w", err)
	}
	return &Keypair{key: key}, nil
}

// Parse restores a keypair from bytes produced by Bytes.
func Parse(blob []byte) (*Keypair, error) {
	if len(blob) == 0 {
		return nil, ErrInvalidKey
	}
	key, err := x509.ParsePKCS1PrivateKey(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Keypair{key: key}, nil
}

func (k *Keypair) Bytes() []byte {
	return x509.MarshalPKCS1PrivateKey(k.key)
}

// MaxMessageSize is the largest plaintext Encrypt accepts for this key.
func (k *Keypair) MaxMessageSize() int {
	return k.key.Size() - 2*sha256.Size - 2
}

func (k *Keypair) Encrypt(msg []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, &k.key.PublicKey, msg, nil)
}

func (k *Keypair) Decrypt(ciphertext []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), nil, k.key, ciphertext, nil)
}
