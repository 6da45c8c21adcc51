package address

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-1ndex/mmm/solana/mmm"
	"github.com/the-1ndex/mmm/testutil"
)

func TestRecord_FromDerivation(t *testing.T) {
	program := testutil.NewRandomPublicKey(t)
	ids := mmm.Identifiers{
		mmm.FieldRolePool:      testutil.NewRandomPublicKey(t),
		mmm.FieldRoleOwner:     testutil.NewRandomPublicKey(t),
		mmm.FieldRoleAssetMint: testutil.NewRandomPublicKey(t),
	}

	derived, bump, err := mmm.DeriveAddress(program, mmm.EntityKindSellState, ids)
	require.NoError(t, err)

	record := NewRecord(program, mmm.EntityKindSellState, ids, derived, bump)
	require.NoError(t, record.Validate())
	assert.Empty(t, record.Uuid)
	assert.NoError(t, record.Verify())

	decoded, err := record.Identifiers()
	require.NoError(t, err)
	assert.Equal(t, ids, decoded)

	record.Bump--
	assert.Error(t, record.Verify())
}

func TestRecord_Validate(t *testing.T) {
	program := testutil.NewRandomPublicKey(t)
	pool := testutil.NewRandomPublicKey(t)
	ids := mmm.Identifiers{mmm.FieldRolePool: pool}

	derived, bump, err := mmm.DeriveAddress(program, mmm.EntityKindBuysideSolEscrow, ids)
	require.NoError(t, err)
	valid := NewRecord(program, mmm.EntityKindBuysideSolEscrow, ids, derived, bump)
	require.NoError(t, valid.Validate())

	for _, tc := range []struct {
		name   string
		mutate func(r *Record)
	}{
		{"missing address", func(r *Record) { r.Address = "" }},
		{"missing program", func(r *Record) { r.Program = "" }},
		{"unknown kind", func(r *Record) { r.Kind = mmm.EntityKindUnknown }},
		{"missing pool", func(r *Record) { r.Pool = "" }},
		{"unused owner", func(r *Record) { r.Owner = r.Pool }},
		{"wrong kind for fields", func(r *Record) { r.Kind = mmm.EntityKindPool }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			record := valid.Clone()
			tc.mutate(&record)
			assert.Error(t, record.Validate())
		})
	}
}

func TestRecord_CloneAndCopy(t *testing.T) {
	record := &Record{
		Id:        7,
		Address:   "address",
		Bump:      254,
		Program:   "program",
		Kind:      mmm.EntityKindPool,
		Owner:     "owner",
		Uuid:      "uuid",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	cloned := record.Clone()
	assert.Equal(t, *record, cloned)
	assert.True(t, record.IsEquivalent(&cloned))

	var copied Record
	record.CopyTo(&copied)
	assert.Equal(t, *record, copied)

	cloned.Id = 8
	assert.True(t, record.IsEquivalent(&cloned))

	cloned.Uuid = "other"
	assert.False(t, record.IsEquivalent(&cloned))
}
