// Package signature implements the Schnorr-style kernel signature and its
// 2-key aggregate variant (TxKernelAssetEmit's owner+asset signature),
// directly atop pkg/ecc's real secp256k1 group arithmetic rather than
// treating the signature scheme as a black box — the teacher takes the
// same approach in pkg/crypto/secp256k1.go, wrapping a real curve library
// instead of mocking ECDSA outright.
package signature

import "github.com/aquila-chain/ledgercore/pkg/ecc"

// Signature is a Schnorr-style signature: a nonce commitment and a
// response scalar satisfying s·G = R + e·Pk for e = H(R, Pk, msg).
type Signature struct {
	NoncePub ecc.Point
	K        ecc.Scalar
}

func challenge(noncePub, pk ecc.Point, msg ecc.Hash) ecc.Scalar {
	o := ecc.NewOracle()
	o.WriteString("schnorr-e")
	o.WritePoint(noncePub)
	o.WritePoint(pk)
	o.WriteHash(msg)
	return o.ReadScalar()
}

// deterministicNonce derives the per-signature nonce from the secret and
// message rather than system randomness, so signing is reproducible in
// tests and never fails from a starved entropy source — the same
// trade-off the original's deterministic NonceGenerator makes.
func deterministicNonce(sk ecc.Scalar, msg ecc.Hash) ecc.Scalar {
	o := ecc.NewOracle()
	o.WriteString("schnorr-nonce")
	o.WriteHash(ecc.Hash(sk.Bytes()))
	o.WriteHash(msg)
	return o.ReadScalar()
}

// Sign produces a Signature over msg under sk.
func Sign(sk ecc.Scalar, msg ecc.Hash) Signature {
	nonce := deterministicNonce(sk, msg)
	noncePub := nonce.BaseMul()
	pk := sk.BaseMul()
	e := challenge(noncePub, pk, msg)
	k := nonce.Add(e.Mul(sk))
	return Signature{NoncePub: noncePub, K: k}
}

// IsValid reports whether sig is a valid signature over msg under pk.
func (sig Signature) IsValid(pk ecc.Point, msg ecc.Hash) bool {
	e := challenge(sig.NoncePub, pk, msg)
	lhs := sig.K.BaseMul()
	rhs := sig.NoncePub.Add(pk.Mul(e))
	return lhs.Equal(rhs)
}

// CombinedPublicKey sums two public keys into the aggregate key a 2-key
// signature verifies against.
func CombinedPublicKey(pk1, pk2 ecc.Point) ecc.Point {
	return pk1.Add(pk2)
}

// SignAggregate signs msg under the combined key sk1+sk2, the scheme
// TxKernelAssetEmit's owner and asset-minting keys share.
func SignAggregate(sk1, sk2 ecc.Scalar, msg ecc.Hash) Signature {
	return Sign(sk1.Add(sk2), msg)
}

// IsValidAggregate reports whether sig is valid over msg under the
// combined key pk1+pk2.
func IsValidAggregate(sig Signature, pk1, pk2 ecc.Point, msg ecc.Hash) bool {
	return sig.IsValid(CombinedPublicKey(pk1, pk2), msg)
}

// Signer produces a Signature over a message. Implemented by KeySigner
// (single-key) and AggregateSigner (2-key).
type Signer interface {
	Sign(msg ecc.Hash) Signature
}

// Verifier checks a Signature against a message. Implemented by
// KeyVerifier (single-key) and AggregateVerifier (2-key).
type Verifier interface {
	IsValid(sig Signature, msg ecc.Hash) bool
}

// KeySigner is a single-key Signer.
type KeySigner struct{ SK ecc.Scalar }

var _ Signer = KeySigner{}

func (s KeySigner) Sign(msg ecc.Hash) Signature { return Sign(s.SK, msg) }

// KeyVerifier is a single-key Verifier.
type KeyVerifier struct{ PK ecc.Point }

var _ Verifier = KeyVerifier{}

func (v KeyVerifier) IsValid(sig Signature, msg ecc.Hash) bool { return sig.IsValid(v.PK, msg) }

// AggregateSigner is a 2-key Signer, used for TxKernelAssetEmit.
type AggregateSigner struct{ SK1, SK2 ecc.Scalar }

var _ Signer = AggregateSigner{}

func (s AggregateSigner) Sign(msg ecc.Hash) Signature {
	return SignAggregate(s.SK1, s.SK2, msg)
}

// AggregateVerifier is a 2-key Verifier, used for TxKernelAssetEmit.
type AggregateVerifier struct{ PK1, PK2 ecc.Point }

var _ Verifier = AggregateVerifier{}

func (v AggregateVerifier) IsValid(sig Signature, msg ecc.Hash) bool {
	return IsValidAggregate(sig, v.PK1, v.PK2, msg)
}
