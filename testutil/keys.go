package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

// NewRandomPublicKey returns the public half of a freshly generated keypair,
// which is always on the ed25519 curve.
func NewRandomPublicKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub
}

// NewRandomBytes returns n bytes from crypto/rand
func NewRandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// NewRandomSeeds returns count seeds of random lengths up to maxLength
func NewRandomSeeds(t *testing.T, count, maxLength int) [][]byte {
	seeds := make([][]byte, count)
	for i := range seeds {
		length := int(NewRandomBytes(t, 1)[0]) % (maxLength + 1)
		seeds[i] = NewRandomBytes(t, length)
	}
	return seeds
}

// MustDecode decodes a base58 string, failing the test on error
func MustDecode(t *testing.T, value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	require.NoError(t, err)
	return decoded
}
