package mmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/testutil"
)

func TestBuildSeeds_SchemaOrder(t *testing.T) {
	owner := testutil.NewRandomPublicKey(t)
	uuid := testutil.NewRandomPublicKey(t)
	pool := testutil.NewRandomPublicKey(t)
	assetMint := testutil.NewRandomPublicKey(t)

	all := Identifiers{
		FieldRoleOwner:     owner,
		FieldRoleUuid:      uuid,
		FieldRolePool:      pool,
		FieldRoleAssetMint: assetMint,
	}

	for _, tc := range []struct {
		kind     EntityKind
		expected [][]byte
	}{
		{
			kind:     EntityKindPool,
			expected: [][]byte{[]byte("pool"), owner, uuid},
		},
		{
			kind:     EntityKindSellState,
			expected: [][]byte{[]byte("sell_state"), pool, owner, assetMint},
		},
		{
			kind:     EntityKindBuysideSolEscrow,
			expected: [][]byte{[]byte("buyside_sol_escrow"), pool},
		},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			seeds, err := BuildSeeds(tc.kind, all)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, seeds)
		})
	}
}

func TestBuildSeeds_MissingIdentifier(t *testing.T) {
	owner := testutil.NewRandomPublicKey(t)
	pool := testutil.NewRandomPublicKey(t)

	for _, tc := range []struct {
		kind EntityKind
		ids  Identifiers
	}{
		{EntityKindPool, Identifiers{FieldRoleOwner: owner}},
		{EntityKindPool, Identifiers{FieldRoleOwner: owner, FieldRoleUuid: nil}},
		{EntityKindSellState, Identifiers{FieldRolePool: pool, FieldRoleOwner: owner}},
		{EntityKindBuysideSolEscrow, Identifiers{FieldRoleOwner: owner}},
		{EntityKindBuysideSolEscrow, nil},
	} {
		_, err := BuildSeeds(tc.kind, tc.ids)
		assert.ErrorIs(t, err, ErrMissingIdentifier, tc.kind.String())
	}
}

func TestBuildSeeds_UnknownKind(t *testing.T) {
	for _, kind := range []EntityKind{EntityKindUnknown, EntityKindBuysideSolEscrow + 1, 255} {
		_, err := BuildSeeds(kind, Identifiers{})
		assert.ErrorIs(t, err, ErrUnknownEntityKind)

		_, err = GetSeedSchema(kind)
		assert.ErrorIs(t, err, ErrUnknownEntityKind)
	}
}

func TestBuildSeeds_IdentifierTooLong(t *testing.T) {
	_, err := BuildSeeds(EntityKindBuysideSolEscrow, Identifiers{
		FieldRolePool: testutil.NewRandomBytes(t, solana.MaxSeedLength+1),
	})
	assert.ErrorIs(t, err, solana.ErrInvalidSeedLength)
}

func TestBuildSeeds_DoesNotAliasInputs(t *testing.T) {
	pool := testutil.NewRandomPublicKey(t)
	original := append([]byte(nil), pool...)

	seeds, err := BuildSeeds(EntityKindBuysideSolEscrow, Identifiers{FieldRolePool: pool})
	require.NoError(t, err)

	seeds[0][0] = 'X'
	seeds[1][0] ^= 0xff

	assert.Equal(t, original, []byte(pool))
	assert.Equal(t, []byte("buyside_sol_escrow"), BuysideSolEscrowPrefix)
}

func TestGetSeedSchema_ReturnsCopy(t *testing.T) {
	schema, err := GetSeedSchema(EntityKindSellState)
	require.NoError(t, err)

	schema.Fields[0] = FieldRoleAssetMint
	schema.Prefix[0] = 'X'

	schema, err = GetSeedSchema(EntityKindSellState)
	require.NoError(t, err)
	assert.Equal(t, []FieldRole{FieldRolePool, FieldRoleOwner, FieldRoleAssetMint}, schema.Fields)
	assert.Equal(t, []byte("sell_state"), schema.Prefix)
}

func TestGetEntityKinds(t *testing.T) {
	assert.Equal(t, []EntityKind{EntityKindPool, EntityKindSellState, EntityKindBuysideSolEscrow}, GetEntityKinds())

	for _, kind := range GetEntityKinds() {
		parsed, err := ParseEntityKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseEntityKind("vault")
	assert.ErrorIs(t, err, ErrUnknownEntityKind)
}

func TestRegisteredSchemaIsEnoughForNewKind(t *testing.T) {
	const kind = EntityKindBuysideSolEscrow + 1
	seedSchemas[kind] = SeedSchema{
		Kind:   kind,
		Name:   "sell_side_escrow",
		Prefix: []byte("sell_side_escrow"),
		Fields: []FieldRole{FieldRolePool, FieldRoleOwner},
	}
	t.Cleanup(func() { delete(seedSchemas, kind) })

	assert.Equal(t, []EntityKind{EntityKindPool, EntityKindSellState, EntityKindBuysideSolEscrow, kind}, GetEntityKinds())
	assert.Equal(t, "sell_side_escrow", kind.String())

	parsed, err := ParseEntityKind("sell_side_escrow")
	require.NoError(t, err)
	assert.Equal(t, kind, parsed)

	pool := testutil.NewRandomPublicKey(t)
	owner := testutil.NewRandomPublicKey(t)
	seeds, err := BuildSeeds(kind, Identifiers{FieldRolePool: pool, FieldRoleOwner: owner})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("sell_side_escrow"), []byte(pool), []byte(owner)}, seeds)
}

func TestParseFieldRole(t *testing.T) {
	for _, role := range []FieldRole{FieldRoleOwner, FieldRoleUuid, FieldRolePool, FieldRoleAssetMint} {
		parsed, err := ParseFieldRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := ParseFieldRole("referral")
	assert.ErrorIs(t, err, ErrUnknownFieldRole)
}

func TestSignerSeeds(t *testing.T) {
	pool := testutil.NewRandomPublicKey(t)

	seeds, err := SignerSeeds(EntityKindBuysideSolEscrow, Identifiers{FieldRolePool: pool}, 253)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("buyside_sol_escrow"), pool, {253}}, seeds)
}
