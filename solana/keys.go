package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// PublicKeyFromBase58 decodes a base58 encoded 32 byte key
func PublicKeyFromBase58(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "%s: %s", value, err.Error())
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "%s decodes to %d bytes", value, len(decoded))
	}
	return ed25519.PublicKey(decoded), nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for package-level constants
func MustPublicKeyFromBase58(value string) ed25519.PublicKey {
	decoded, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

func validatePublicKey(key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidPublicKey, "got %d bytes", len(key))
	}
	return nil
}
