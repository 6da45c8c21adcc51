package solana

import (
	"filippo.io/edwards25519"
)

// CurvePredicate reports whether a 32 byte value is the compressed encoding of
// a point on the curve backing ordinary keypairs. A value that is on the curve
// could have a matching private key and is never accepted as a program address.
type CurvePredicate interface {
	IsOnCurve(b []byte) bool
}

// CurvePredicateFunc adapts a plain function to a CurvePredicate
type CurvePredicateFunc func(b []byte) bool

// IsOnCurve implements CurvePredicate
func (f CurvePredicateFunc) IsOnCurve(b []byte) bool {
	return f(b)
}

// Ed25519Curve is the predicate used by the Solana runtime. Non-canonical
// encodings of y decompress successfully there as well, so they count as on
// curve.
var Ed25519Curve CurvePredicate = CurvePredicateFunc(isOnEd25519Curve)

// IsOnCurve reports whether b is a valid ed25519 public key encoding
func IsOnCurve(b []byte) bool {
	return Ed25519Curve.IsOnCurve(b)
}

func isOnEd25519Curve(b []byte) bool {
	if len(b) != 32 {
		return false
	}

	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
