// Package ecc provides the opaque Scalar, Point and Hash types the rest of
// the core ledger model is built on, plus the Oracle transcript used for
// every Fiat-Shamir-style absorption (switch commitments, kernel message/ID
// hashing, block header hashing, rules checksums).
//
// The group arithmetic here is real: it is backed by
// github.com/decred/dcrd/dcrec/secp256k1/v4, exactly the curve library the
// rest of this corpus reaches for when it needs EC math (see
// pkg/signature, which wraps the same library for Bitcoin-style ECDSA).
// What this package does NOT do is implement range proofs, HKDF, or the
// Schnorr signature *scheme* — those stay behind the collaborator
// interfaces in pkg/rangeproof and pkg/signature, per the external-
// collaborator boundary this core is built against.
package ecc

import (
	"errors"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Hash is a 32-byte digest, opaque to callers beyond byte comparison.
type Hash [32]byte

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Scalar wraps a secp256k1 scalar (an element of the group order's field).
type Scalar struct {
	v secp.ModNScalar
}

// ScalarFromBytes decodes a 32-byte big-endian scalar. Overflowing values
// are reduced modulo the group order, matching secp256k1.ModNScalar's
// SetByteSlice behaviour.
func ScalarFromBytes(b []byte) Scalar {
	var s Scalar
	s.v.SetByteSlice(b)
	return s
}

// ScalarFromUint64 builds a small scalar, useful for fee/value arithmetic.
func ScalarFromUint64(n uint64) Scalar {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[31-i] = byte(n >> (8 * i))
	}
	return ScalarFromBytes(b[:])
}

// Bytes returns the big-endian 32-byte encoding.
func (s Scalar) Bytes() [32]byte {
	return s.v.Bytes()
}

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	r := s.v
	r.Add(&other.v)
	return Scalar{v: r}
}

// Negate returns -s.
func (s Scalar) Negate() Scalar {
	r := s.v
	r.Negate()
	return Scalar{v: r}
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	r := s.v
	r.Mul(&other.v)
	return Scalar{v: r}
}

// BaseMul returns s*G, computed via the library's dedicated base-point
// multiplication rather than a generic Point.Mul(G()).
func (s Scalar) BaseMul() Point {
	if s.IsZero() {
		return Zero
	}
	var r secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&s.v, &r)
	return Point{j: r}
}

// Point wraps a secp256k1 curve point, kept internally in Jacobian
// coordinates so chains of Add/Mul avoid repeated inversions.
type Point struct {
	j          secp.JacobianPoint
	isInfinity bool
}

// ErrInvalidPoint is returned when importing bytes that do not decode to a
// valid, non-infinity curve point.
var ErrInvalidPoint = errors.New("ecc: invalid curve point")

// Zero is the point at infinity (additive identity).
var Zero = Point{isInfinity: true}

// Import decodes a 33-byte compressed point. Unlike ImportNnz it accepts
// the identity encoded as all-zero bytes, mapping it to Zero.
func Import(b [33]byte) (Point, error) {
	allZero := true
	for _, c := range b {
		if c != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return Zero, nil
	}
	return ImportNnz(b)
}

// ImportNnz decodes a 33-byte compressed point and rejects the identity.
func ImportNnz(b [33]byte) (Point, error) {
	pub, err := secp.ParsePubKey(b[:])
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	var j secp.JacobianPoint
	pub.AsJacobian(&j)
	return Point{j: j}, nil
}

// Bytes encodes the point in 33-byte compressed form. The identity encodes
// as 33 zero bytes (callers generally guard against serializing Zero).
func (p Point) Bytes() [33]byte {
	var out [33]byte
	if p.isInfinity {
		return out
	}
	aff := p.j
	aff.ToAffine()
	pub := secp.NewPublicKey(&aff.X, &aff.Y)
	copy(out[:], pub.SerializeCompressed())
	return out
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	if p.isInfinity {
		return other
	}
	if other.isInfinity {
		return p
	}
	var r secp.JacobianPoint
	secp.AddNonConst(&p.j, &other.j, &r)
	if z := r.Z; z.Normalize().IsZero() {
		return Zero
	}
	return Point{j: r}
}

// Negate returns -p (flips the Y coordinate).
func (p Point) Negate() Point {
	if p.isInfinity {
		return p
	}
	aff := p.j
	aff.ToAffine()
	aff.Y.Negate(1)
	aff.Y.Normalize()
	return Point{j: aff}
}

// Mul returns p scaled by s.
func (p Point) Mul(s Scalar) Point {
	if p.isInfinity || s.IsZero() {
		return Zero
	}
	var r secp.JacobianPoint
	secp.ScalarMultNonConst(&s.v, &p.j, &r)
	return Point{j: r}
}

// Equal reports whether p and other are the same point.
func (p Point) Equal(other Point) bool {
	if p.isInfinity != other.isInfinity {
		return false
	}
	if p.isInfinity {
		return true
	}
	a, b := p.j, other.j
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// IsZero reports whether p is the point at infinity.
func (p Point) IsZero() bool {
	return p.isInfinity
}
