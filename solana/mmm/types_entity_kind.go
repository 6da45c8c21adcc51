package mmm

import (
	"strings"

	"github.com/pkg/errors"
)

type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota

	EntityKindPool
	EntityKindSellState
	EntityKindBuysideSolEscrow
)

func (k EntityKind) String() string {
	if schema, ok := seedSchemas[k]; ok {
		return schema.Name
	}
	return "unknown"
}

// ParseEntityKind is the inverse of EntityKind.String
func ParseEntityKind(value string) (EntityKind, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for kind, schema := range seedSchemas {
		if schema.Name == name {
			return kind, nil
		}
	}
	return EntityKindUnknown, errors.Wrapf(ErrUnknownEntityKind, "%q", value)
}

// FieldRole names an identifier slot in a seed schema
type FieldRole uint8

const (
	FieldRoleUnknown FieldRole = iota

	FieldRoleOwner
	FieldRoleUuid
	FieldRolePool
	FieldRoleAssetMint
)

func (r FieldRole) String() string {
	switch r {
	case FieldRoleOwner:
		return "owner"
	case FieldRoleUuid:
		return "uuid"
	case FieldRolePool:
		return "pool"
	case FieldRoleAssetMint:
		return "asset_mint"
	}
	return "unknown"
}

// ParseFieldRole is the inverse of FieldRole.String
func ParseFieldRole(value string) (FieldRole, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "owner":
		return FieldRoleOwner, nil
	case "uuid":
		return FieldRoleUuid, nil
	case "pool":
		return FieldRolePool, nil
	case "asset_mint":
		return FieldRoleAssetMint, nil
	}
	return FieldRoleUnknown, errors.Wrapf(ErrUnknownFieldRole, "%q", value)
}
