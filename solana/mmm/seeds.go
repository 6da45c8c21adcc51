package mmm

import (
	"crypto/ed25519"
	"sort"

	"github.com/pkg/errors"

	"github.com/the-1ndex/mmm/solana"
)

// SeedSchema is the ordered seed layout of an entity kind: a literal prefix
// followed by one identifier per field role. Name is the kind's external
// spelling used by String and ParseEntityKind.
type SeedSchema struct {
	Kind   EntityKind
	Name   string
	Prefix []byte
	Fields []FieldRole
}

// Adding an entity kind only requires a new constant and a new row here
var seedSchemas = map[EntityKind]SeedSchema{
	EntityKindPool: {
		Kind:   EntityKindPool,
		Name:   "pool",
		Prefix: PoolPrefix,
		Fields: []FieldRole{FieldRoleOwner, FieldRoleUuid},
	},
	EntityKindSellState: {
		Kind:   EntityKindSellState,
		Name:   "sell_state",
		Prefix: SellStatePrefix,
		Fields: []FieldRole{FieldRolePool, FieldRoleOwner, FieldRoleAssetMint},
	},
	EntityKindBuysideSolEscrow: {
		Kind:   EntityKindBuysideSolEscrow,
		Name:   "buyside_sol_escrow",
		Prefix: BuysideSolEscrowPrefix,
		Fields: []FieldRole{FieldRolePool},
	},
}

// GetSeedSchema looks up the schema for an entity kind. The returned value is
// a copy and can be modified freely.
func GetSeedSchema(kind EntityKind) (*SeedSchema, error) {
	schema, ok := seedSchemas[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntityKind, "kind %d", kind)
	}

	return &SeedSchema{
		Kind:   schema.Kind,
		Name:   schema.Name,
		Prefix: cloneBytes(schema.Prefix),
		Fields: append([]FieldRole(nil), schema.Fields...),
	}, nil
}

// GetEntityKinds returns every registered kind in ascending order
func GetEntityKinds() []EntityKind {
	res := make([]EntityKind, 0, len(seedSchemas))
	for kind := range seedSchemas {
		res = append(res, kind)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Identifiers maps a field role to the key filling it
type Identifiers map[FieldRole]ed25519.PublicKey

// BuildSeeds emits the seeds for an entity in schema order. Every field role
// in the schema must have a non-empty identifier; identifiers for roles the
// schema doesn't use are ignored.
func BuildSeeds(kind EntityKind, ids Identifiers) ([][]byte, error) {
	schema, err := GetSeedSchema(kind)
	if err != nil {
		return nil, err
	}

	seeds := make([][]byte, 0, 1+len(schema.Fields))
	seeds = append(seeds, schema.Prefix)
	for _, role := range schema.Fields {
		id := ids[role]
		if len(id) == 0 {
			return nil, errors.Wrapf(ErrMissingIdentifier, "%s requires %s", kind, role)
		}
		seeds = append(seeds, cloneBytes(id))
	}

	if err := solana.ValidateSeeds(seeds...); err != nil {
		return nil, errors.Wrapf(err, "%s seeds", kind)
	}
	return seeds, nil
}

// SignerSeeds is BuildSeeds with the bump appended as the final seed, which is
// the form the program signs with.
func SignerSeeds(kind EntityKind, ids Identifiers, bump uint8) ([][]byte, error) {
	seeds, err := BuildSeeds(kind, ids)
	if err != nil {
		return nil, err
	}
	return append(seeds, []byte{bump}), nil
}
