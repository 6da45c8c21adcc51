package solana

import (
	"crypto/ed25519"

	sha256 "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

const (
	// MaxSeeds is the maximum number of seeds in a single derivation
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed in bytes
	MaxSeedLength = 32

	// MaxSeedsLength bounds the combined length of all seeds
	MaxSeedsLength = MaxSeeds * MaxSeedLength

	// ProgramDerivedAddressMarker separates program addresses from any other
	// sha256 preimage a key could have been produced from.
	ProgramDerivedAddressMarker = "ProgramDerivedAddress"
)

var (
	ErrInvalidSeedCount    = errors.New("invalid seed count")
	ErrInvalidSeedLength   = errors.New("invalid seed length")
	ErrDerivationExhausted = errors.New("unable to find a viable program address bump seed")
	ErrOnCurve             = errors.New("program address lies on the ed25519 curve")
)

// Deriver computes program derived addresses against a curve predicate
type Deriver struct {
	curve CurvePredicate
}

// NewDeriver returns a Deriver that rejects candidates the predicate reports
// as on curve.
func NewDeriver(curve CurvePredicate) *Deriver {
	return &Deriver{curve: curve}
}

var defaultDeriver = NewDeriver(Ed25519Curve)

// FindProgramAddressAndBump searches bumps from 255 down to 0 and returns the
// first candidate that is off curve along with its bump. Seeds are hashed in
// the order given.
//
// The bump is not counted against MaxSeeds. The on-chain runtime counts it, so
// only derivations with at most MaxSeeds-1 caller seeds can be signed for by
// the program; CreateProgramAddress with the bump appended rejects the rest.
func (d *Deriver) FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	if err := validatePublicKey(program); err != nil {
		return nil, 0, err
	}
	if err := ValidateSeeds(seeds...); err != nil {
		return nil, 0, err
	}

	bumpSeed := make([]byte, 1)
	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)

		candidate := hashProgramAddress(program, append(seeds[:len(seeds):len(seeds)], bumpSeed)...)
		if !d.curve.IsOnCurve(candidate) {
			return candidate, uint8(bump), nil
		}
	}

	return nil, 0, ErrDerivationExhausted
}

// FindProgramAddress is FindProgramAddressAndBump without the bump
func (d *Deriver) FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	address, _, err := d.FindProgramAddressAndBump(program, seeds...)
	return address, err
}

// CreateProgramAddress hashes the seeds exactly as given, with any bump
// already appended by the caller, and fails with ErrOnCurve if the result
// could be an ordinary public key.
func (d *Deriver) CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if err := validatePublicKey(program); err != nil {
		return nil, err
	}
	if err := ValidateSeeds(seeds...); err != nil {
		return nil, err
	}

	candidate := hashProgramAddress(program, seeds...)
	if d.curve.IsOnCurve(candidate) {
		return nil, ErrOnCurve
	}
	return candidate, nil
}

// ValidateSeeds checks the seed count and length bounds
func ValidateSeeds(seeds ...[]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(ErrInvalidSeedCount, "%d seeds exceeds maximum of %d", len(seeds), MaxSeeds)
	}

	var total int
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return errors.Wrapf(ErrInvalidSeedLength, "seed %d is %d bytes, maximum is %d", i, len(seed), MaxSeedLength)
		}
		total += len(seed)
	}
	if total > MaxSeedsLength {
		return errors.Wrapf(ErrInvalidSeedLength, "seeds total %d bytes, maximum is %d", total, MaxSeedsLength)
	}
	return nil
}

// FindProgramAddressAndBump derives against the ed25519 curve. See
// Deriver.FindProgramAddressAndBump for how the bump relates to MaxSeeds.
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	return defaultDeriver.FindProgramAddressAndBump(program, seeds...)
}

// FindProgramAddress derives against the ed25519 curve
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	return defaultDeriver.FindProgramAddress(program, seeds...)
}

// CreateProgramAddress derives against the ed25519 curve
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	return defaultDeriver.CreateProgramAddress(program, seeds...)
}

func hashProgramAddress(program ed25519.PublicKey, seeds ...[]byte) ed25519.PublicKey {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(program)
	h.Write([]byte(ProgramDerivedAddressMarker))
	return ed25519.PublicKey(h.Sum(nil))
}
