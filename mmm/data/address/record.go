package address

import (
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/the-1ndex/mmm/solana"
	"github.com/the-1ndex/mmm/solana/mmm"
)

// Record is a derived program address along with the inputs it was derived
// from. Identifier fields not used by the entity kind are empty.
type Record struct {
	Id uint64

	Address string
	Bump    uint8
	Program string
	Kind    mmm.EntityKind

	Owner     string
	Uuid      string
	Pool      string
	AssetMint string

	CreatedAt time.Time
}

// NewRecord builds a record from a derivation result
func NewRecord(program ed25519.PublicKey, kind mmm.EntityKind, ids mmm.Identifiers, address ed25519.PublicKey, bump uint8) *Record {
	return &Record{
		Address: base58.Encode(address),
		Bump:    bump,
		Program: base58.Encode(program),
		Kind:    kind,

		Owner:     encodeOptional(ids[mmm.FieldRoleOwner]),
		Uuid:      encodeOptional(ids[mmm.FieldRoleUuid]),
		Pool:      encodeOptional(ids[mmm.FieldRolePool]),
		AssetMint: encodeOptional(ids[mmm.FieldRoleAssetMint]),
	}
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}
	if len(r.Program) == 0 {
		return errors.New("program is required")
	}

	schema, err := mmm.GetSeedSchema(r.Kind)
	if err != nil {
		return err
	}

	required := make(map[mmm.FieldRole]struct{})
	for _, role := range schema.Fields {
		required[role] = struct{}{}
	}

	for role, value := range r.identifierStrings() {
		_, isRequired := required[role]
		if isRequired && len(value) == 0 {
			return errors.Errorf("%s is required for %s", role, r.Kind)
		}
		if !isRequired && len(value) > 0 {
			return errors.Errorf("%s is not used by %s", role, r.Kind)
		}
	}

	return nil
}

// Identifiers decodes the identifier fields used by the record's kind
func (r *Record) Identifiers() (mmm.Identifiers, error) {
	ids := make(mmm.Identifiers)
	for role, value := range r.identifierStrings() {
		if len(value) == 0 {
			continue
		}

		decoded, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", role)
		}
		ids[role] = decoded
	}
	return ids, nil
}

// Verify recomputes the address from the record's inputs and stored bump
func (r *Record) Verify() error {
	program, err := solana.PublicKeyFromBase58(r.Program)
	if err != nil {
		return errors.Wrap(err, "invalid program")
	}
	address, err := solana.PublicKeyFromBase58(r.Address)
	if err != nil {
		return errors.Wrap(err, "invalid address")
	}
	ids, err := r.Identifiers()
	if err != nil {
		return err
	}
	return mmm.VerifyAddress(program, r.Kind, ids, r.Bump, address)
}

// IsEquivalent compares everything but the database id and creation time
func (r *Record) IsEquivalent(other *Record) bool {
	return r.Address == other.Address &&
		r.Bump == other.Bump &&
		r.Program == other.Program &&
		r.Kind == other.Kind &&
		r.Owner == other.Owner &&
		r.Uuid == other.Uuid &&
		r.Pool == other.Pool &&
		r.AssetMint == other.AssetMint
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,
		Program: r.Program,
		Kind:    r.Kind,

		Owner:     r.Owner,
		Uuid:      r.Uuid,
		Pool:      r.Pool,
		AssetMint: r.AssetMint,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump
	dst.Program = r.Program
	dst.Kind = r.Kind

	dst.Owner = r.Owner
	dst.Uuid = r.Uuid
	dst.Pool = r.Pool
	dst.AssetMint = r.AssetMint

	dst.CreatedAt = r.CreatedAt
}

func (r *Record) identifierStrings() map[mmm.FieldRole]string {
	return map[mmm.FieldRole]string{
		mmm.FieldRoleOwner:     r.Owner,
		mmm.FieldRoleUuid:      r.Uuid,
		mmm.FieldRolePool:      r.Pool,
		mmm.FieldRoleAssetMint: r.AssetMint,
	}
}

func encodeOptional(value []byte) string {
	if len(value) == 0 {
		return ""
	}
	return base58.Encode(value)
}
