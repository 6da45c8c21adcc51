package mmm

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	ErrUnknownFieldRole  = errors.New("unknown field role")
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrAddressMismatch   = errors.New("address does not match seeds and bump")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("mmm3XBJg5gk8XJxEKBvdgptZz6SgK4tXvn36sodowMc")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)
