package solana

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-1ndex/mmm/testutil"
)

func TestIsOnCurve(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.True(t, IsOnCurve(testutil.NewRandomPublicKey(t)))
	}

	assert.False(t, IsOnCurve(nil))
	assert.False(t, IsOnCurve(make([]byte, 31)))
	assert.False(t, IsOnCurve(make([]byte, 33)))
}

func TestIsOnCurve_DerivedAddresses(t *testing.T) {
	program := testutil.NewRandomPublicKey(t)
	for i := 0; i < 100; i++ {
		address, _, err := FindProgramAddressAndBump(program, testutil.NewRandomSeeds(t, 2, MaxSeedLength)...)
		require.NoError(t, err)
		assert.False(t, IsOnCurve(address))
	}
}

func TestPublicKeyFromBase58(t *testing.T) {
	key := testutil.NewRandomPublicKey(t)

	decoded, err := PublicKeyFromBase58(base58.Encode(key))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = PublicKeyFromBase58("0OIl")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = PublicKeyFromBase58(base58.Encode(key[:31]))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	assert.Panics(t, func() {
		MustPublicKeyFromBase58("not a key")
	})
}
