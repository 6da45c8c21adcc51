package mmm

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/testutil"
)

func TestGetPoolAddress_UuidChangesAddress(t *testing.T) {
	owner := testutil.NewRandomPublicKey(t)
	uuid1 := testutil.NewRandomPublicKey(t)
	uuid2 := testutil.NewRandomPublicKey(t)

	address1, bump1, err := GetPoolAddress(&GetPoolAddressArgs{Owner: owner, Uuid: uuid1})
	require.NoError(t, err)
	assert.False(t, solana.IsOnCurve(address1))

	again, bumpAgain, err := GetPoolAddress(&GetPoolAddressArgs{Owner: owner, Uuid: uuid1})
	require.NoError(t, err)
	assert.Equal(t, address1, again)
	assert.Equal(t, bump1, bumpAgain)

	address2, _, err := GetPoolAddress(&GetPoolAddressArgs{Owner: owner, Uuid: uuid2})
	require.NoError(t, err)
	assert.NotEqual(t, address1, address2)
}

func TestGetSellStateAddress_SwappedOwnerAndMint(t *testing.T) {
	pool := testutil.NewRandomPublicKey(t)
	owner := testutil.NewRandomPublicKey(t)
	assetMint := testutil.NewRandomPublicKey(t)

	expected, _, err := GetSellStateAddress(&GetSellStateAddressArgs{Pool: pool, Owner: owner, AssetMint: assetMint})
	require.NoError(t, err)

	swapped, _, err := GetSellStateAddress(&GetSellStateAddressArgs{Pool: pool, Owner: assetMint, AssetMint: owner})
	require.NoError(t, err)

	assert.NotEqual(t, expected, swapped)
}

func TestGetAddressHelpers_MatchDeriveAddress(t *testing.T) {
	owner := testutil.NewRandomPublicKey(t)
	uuid := testutil.NewRandomPublicKey(t)
	assetMint := testutil.NewRandomPublicKey(t)

	pool, poolBump, err := GetPoolAddress(&GetPoolAddressArgs{Owner: owner, Uuid: uuid})
	require.NoError(t, err)
	derived, derivedBump, err := DeriveAddress(PROGRAM_ID, EntityKindPool, Identifiers{FieldRoleOwner: owner, FieldRoleUuid: uuid})
	require.NoError(t, err)
	assert.Equal(t, pool, derived)
	assert.Equal(t, poolBump, derivedBump)

	sellState, sellStateBump, err := GetSellStateAddress(&GetSellStateAddressArgs{Pool: pool, Owner: owner, AssetMint: assetMint})
	require.NoError(t, err)
	derived, derivedBump, err = solana.FindProgramAddressAndBump(PROGRAM_ID, []byte("sell_state"), pool, owner, assetMint)
	require.NoError(t, err)
	assert.Equal(t, sellState, derived)
	assert.Equal(t, sellStateBump, derivedBump)

	escrow, escrowBump, err := GetBuysideSolEscrowAddress(&GetBuysideSolEscrowAddressArgs{Pool: pool})
	require.NoError(t, err)
	derived, derivedBump, err = solana.FindProgramAddressAndBump(PROGRAM_ID, []byte("buyside_sol_escrow"), pool)
	require.NoError(t, err)
	assert.Equal(t, escrow, derived)
	assert.Equal(t, escrowBump, derivedBump)

	_, _, err = GetPoolAddress(&GetPoolAddressArgs{Owner: owner})
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestDeriveAddress_MatchesSolanaGo(t *testing.T) {
	program := testutil.NewRandomPublicKey(t)
	owner := testutil.NewRandomPublicKey(t)
	uuid := testutil.NewRandomPublicKey(t)

	pool, bump, err := DeriveAddress(program, EntityKindPool, Identifiers{FieldRoleOwner: owner, FieldRoleUuid: uuid})
	require.NoError(t, err)

	expected, expectedBump, err := solanago.FindProgramAddress(
		[][]byte{[]byte("pool"), owner, uuid},
		solanago.PublicKeyFromBytes(program),
	)
	require.NoError(t, err)
	assert.Equal(t, expected.Bytes(), []byte(pool))
	assert.Equal(t, expectedBump, bump)
}

func TestVerifyAddress(t *testing.T) {
	program := testutil.NewRandomPublicKey(t)
	pool := testutil.NewRandomPublicKey(t)
	ids := Identifiers{FieldRolePool: pool}

	escrow, bump, err := DeriveAddress(program, EntityKindBuysideSolEscrow, ids)
	require.NoError(t, err)

	require.NoError(t, VerifyAddress(program, EntityKindBuysideSolEscrow, ids, bump, escrow))

	err = VerifyAddress(program, EntityKindBuysideSolEscrow, ids, bump, testutil.NewRandomPublicKey(t))
	assert.ErrorIs(t, err, ErrAddressMismatch)

	err = VerifyAddress(program, EntityKindBuysideSolEscrow, Identifiers{}, bump, escrow)
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	// A different bump either lands on the curve or yields another address
	err = VerifyAddress(program, EntityKindBuysideSolEscrow, ids, bump-1, escrow)
	assert.Error(t, err)
}
