package mmm

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/the-1ndex/mmm/solana"
)

var (
	PoolPrefix             = []byte("pool")
	SellStatePrefix        = []byte("sell_state")
	BuysideSolEscrowPrefix = []byte("buyside_sol_escrow")
)

// DeriveAddress builds the seeds for an entity and derives its address under
// the given program
func DeriveAddress(program ed25519.PublicKey, kind EntityKind, ids Identifiers) (ed25519.PublicKey, uint8, error) {
	seeds, err := BuildSeeds(kind, ids)
	if err != nil {
		return nil, 0, err
	}
	return solana.FindProgramAddressAndBump(program, seeds...)
}

// VerifyAddress checks that address is the program address for the entity
// using a previously stored bump
func VerifyAddress(program ed25519.PublicKey, kind EntityKind, ids Identifiers, bump uint8, address ed25519.PublicKey) error {
	seeds, err := SignerSeeds(kind, ids, bump)
	if err != nil {
		return err
	}

	expected, err := solana.CreateProgramAddress(program, seeds...)
	if err != nil {
		return err
	}
	if !bytes.Equal(expected, address) {
		return errors.Wrapf(ErrAddressMismatch, "%s with bump %d", kind, bump)
	}
	return nil
}

type GetPoolAddressArgs struct {
	Owner ed25519.PublicKey
	Uuid  ed25519.PublicKey
}

func GetPoolAddress(args *GetPoolAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(
		PROGRAM_ID,
		EntityKindPool,
		Identifiers{
			FieldRoleOwner: args.Owner,
			FieldRoleUuid:  args.Uuid,
		},
	)
}

type GetSellStateAddressArgs struct {
	Pool      ed25519.PublicKey
	Owner     ed25519.PublicKey
	AssetMint ed25519.PublicKey
}

func GetSellStateAddress(args *GetSellStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(
		PROGRAM_ID,
		EntityKindSellState,
		Identifiers{
			FieldRolePool:      args.Pool,
			FieldRoleOwner:     args.Owner,
			FieldRoleAssetMint: args.AssetMint,
		},
	)
}

type GetBuysideSolEscrowAddressArgs struct {
	Pool ed25519.PublicKey
}

func GetBuysideSolEscrowAddress(args *GetBuysideSolEscrowAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(
		PROGRAM_ID,
		EntityKindBuysideSolEscrow,
		Identifiers{
			FieldRolePool: args.Pool,
		},
	)
}
