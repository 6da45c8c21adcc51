package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-1ndex/mmm/mmm/data/address"
	"github.com/the-1ndex/mmm/solana/mmm"
	"github.com/the-1ndex/mmm/testutil"
)

func RunTests(t *testing.T, s address.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s address.Store){
		testRoundTrip,
		testIdempotentPut,
		testConflictingPut,
		testInvalidRecord,
		testGetAllByPool,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s address.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		expected := newPoolRecord(t)

		_, err := s.GetByAddress(ctx, expected.Address)
		assert.Equal(t, address.ErrNotFound, err)

		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.False(t, expected.CreatedAt.IsZero())

		actual, err := s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assert.Equal(t, expected.Id, actual.Id)
		assert.True(t, cloned.IsEquivalent(actual))
		assert.Equal(t, expected.CreatedAt.Unix(), actual.CreatedAt.Unix())
		assert.NoError(t, actual.Verify())
	})
}

func testIdempotentPut(t *testing.T, s address.Store) {
	t.Run("testIdempotentPut", func(t *testing.T) {
		ctx := context.Background()

		record := newPoolRecord(t)
		require.NoError(t, s.Put(ctx, record))

		again := record.Clone()
		again.Id = 0
		again.CreatedAt = time.Time{}
		require.NoError(t, s.Put(ctx, &again))
		assert.Equal(t, record.Id, again.Id)
		assert.Equal(t, record.CreatedAt.Unix(), again.CreatedAt.Unix())
	})
}

func testConflictingPut(t *testing.T, s address.Store) {
	t.Run("testConflictingPut", func(t *testing.T) {
		ctx := context.Background()

		record := newPoolRecord(t)
		require.NoError(t, s.Put(ctx, record))

		conflicting := record.Clone()
		conflicting.Id = 0
		conflicting.Bump = record.Bump - 1
		assert.Equal(t, address.ErrAlreadyExists, s.Put(ctx, &conflicting))

		actual, err := s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, record.Bump, actual.Bump)
	})
}

func testInvalidRecord(t *testing.T, s address.Store) {
	t.Run("testInvalidRecord", func(t *testing.T) {
		ctx := context.Background()

		for _, mutate := range []func(r *address.Record){
			func(r *address.Record) { r.Address = "" },
			func(r *address.Record) { r.Program = "" },
			func(r *address.Record) { r.Kind = mmm.EntityKindUnknown },
			func(r *address.Record) { r.Uuid = "" },
			func(r *address.Record) { r.AssetMint = r.Owner },
		} {
			record := newPoolRecord(t)
			mutate(record)
			assert.Error(t, s.Put(ctx, record))

			_, err := s.GetByAddress(ctx, record.Address)
			assert.Equal(t, address.ErrNotFound, err)
		}
	})
}

func testGetAllByPool(t *testing.T, s address.Store) {
	t.Run("testGetAllByPool", func(t *testing.T) {
		ctx := context.Background()

		poolRecord := newPoolRecord(t)
		require.NoError(t, s.Put(ctx, poolRecord))

		_, err := s.GetAllByPool(ctx, poolRecord.Address)
		assert.Equal(t, address.ErrNotFound, err)

		pool := testutil.MustDecode(t, poolRecord.Address)
		owner := testutil.MustDecode(t, poolRecord.Owner)

		var expected []*address.Record
		for i := 0; i < 3; i++ {
			ids := mmm.Identifiers{
				mmm.FieldRolePool:      pool,
				mmm.FieldRoleOwner:     owner,
				mmm.FieldRoleAssetMint: testutil.NewRandomPublicKey(t),
			}
			expected = append(expected, newRecord(t, mmm.EntityKindSellState, ids))
		}
		expected = append(expected, newRecord(t, mmm.EntityKindBuysideSolEscrow, mmm.Identifiers{mmm.FieldRolePool: pool}))

		// Records under another pool aren't returned
		require.NoError(t, s.Put(ctx, newRecord(t, mmm.EntityKindBuysideSolEscrow, mmm.Identifiers{mmm.FieldRolePool: testutil.NewRandomPublicKey(t)})))

		for _, record := range expected {
			require.NoError(t, s.Put(ctx, record))
		}

		actual, err := s.GetAllByPool(ctx, poolRecord.Address)
		require.NoError(t, err)
		require.Len(t, actual, len(expected))
		for i, record := range actual {
			assert.Equal(t, expected[i].Id, record.Id)
			assert.True(t, expected[i].IsEquivalent(record))
		}
	})
}

func newPoolRecord(t *testing.T) *address.Record {
	return newRecord(t, mmm.EntityKindPool, mmm.Identifiers{
		mmm.FieldRoleOwner: testutil.NewRandomPublicKey(t),
		mmm.FieldRoleUuid:  testutil.NewRandomPublicKey(t),
	})
}

func newRecord(t *testing.T, kind mmm.EntityKind, ids mmm.Identifiers) *address.Record {
	program := testutil.NewRandomPublicKey(t)
	derived, bump, err := mmm.DeriveAddress(program, kind, ids)
	require.NoError(t, err)
	return address.NewRecord(program, kind, ids, derived, bump)
}
