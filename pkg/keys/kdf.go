package keys

import "github.com/aquila-chain/ledgercore/pkg/ecc"

// IPKdf is the public half of a key-derivation function: it can derive a
// public key (and, for the tag-KDF role, a recovery scalar) for a given
// ID, but cannot derive the corresponding private scalar. Matches the
// original's Key::IPKdf.
type IPKdf interface {
	// DerivePKey derives the public point for id.
	DerivePKey(id ID) ecc.Point
	// DeriveTag derives the recovery scalar used by
	// Output.GenerateSeedKid/VerifyRecovered — tag derivation only ever
	// needs the public half of the KDF.
	DeriveTag(id ID) ecc.Scalar
	// DerivePKeyG derives hv's blinding scalar projected onto G, without
	// exposing the scalar itself. Used by SwitchCommitment.Recover.
	DerivePKeyG(hv ecc.Hash) ecc.Point
	// DerivePKeyJ derives hv's blinding scalar projected onto J. Used
	// alongside DerivePKeyG by SwitchCommitment.Recover to reconstruct
	// the switch-commitment tweak without the private scalar.
	DerivePKeyJ(hv ecc.Hash) ecc.Point
}

// IKdf is the private half: it can derive the blinding scalar for an ID,
// and produce its own public projection. Matches the original's
// Key::IKdf.
type IKdf interface {
	IPKdf
	// DeriveKey derives the private scalar for id.
	DeriveKey(id ID) ecc.Scalar
	// DeriveKeyHash derives the private scalar directly from a hash
	// value rather than an ID tuple — the overload SwitchCommitment uses,
	// since a switch commitment's derivation hash already folds in the
	// IDV's fields (and, for the newer scheme, its value).
	DeriveKeyHash(hv ecc.Hash) ecc.Scalar
}

// HKdf is the reference hash-based KDF: every derived key is an Oracle
// absorption of a secret scalar and the requested ID, reduced back into a
// scalar. Named after the original's ECC::HKdf.
type HKdf struct {
	secret   ecc.Scalar // the master/child secret exponent
	cofactor ecc.Scalar // BB2.1 scheme coercion factor, see CreateChild
}

var _ IKdf = HKdf{}

// NewMasterHKdf builds a master HKdf from a 32-byte seed, absorbing it
// through the Oracle rather than using it directly as a scalar so an
// all-zero or otherwise degenerate seed never produces a degenerate key.
func NewMasterHKdf(seed [32]byte) HKdf {
	o := ecc.NewOracle()
	o.WriteString("master")
	o.WriteHash(ecc.Hash(seed))
	return HKdf{secret: o.ReadScalar(), cofactor: ecc.ScalarFromUint64(1)}
}

func (k HKdf) deriveScalar(tag string, id ID) ecc.Scalar {
	o := ecc.NewOracle()
	o.WriteString(tag)
	o.WriteHash(ecc.Hash(k.secret.Bytes()))
	o.WriteUint64(id.Idx)
	o.WriteUint32(uint32(id.Type))
	o.WriteUint32(id.SubIdx)
	return o.ReadScalar().Mul(k.cofactor)
}

// DeriveKey derives the private scalar for id.
func (k HKdf) DeriveKey(id ID) ecc.Scalar {
	return k.deriveScalar("kid", id)
}

// DeriveKeyHash derives the private scalar directly from a hash value.
func (k HKdf) DeriveKeyHash(hv ecc.Hash) ecc.Scalar {
	o := ecc.NewOracle()
	o.WriteString("kid-hash")
	o.WriteHash(ecc.Hash(k.secret.Bytes()))
	o.WriteHash(hv)
	return o.ReadScalar().Mul(k.cofactor)
}

// DerivePKey derives the public point for id (k.DeriveKey(id)*G).
func (k HKdf) DerivePKey(id ID) ecc.Point {
	return k.DeriveKey(id).BaseMul()
}

// DerivePKeyG derives hv's scalar projected onto G. HKdf always holds the
// private scalar, so this is DeriveKeyHash(hv)*G; a strictly public-only
// KDF variant (a "view key") is out of scope, per the elliptic-curve
// internals Non-goal.
func (k HKdf) DerivePKeyG(hv ecc.Hash) ecc.Point {
	return k.DeriveKeyHash(hv).BaseMul()
}

// DerivePKeyJ derives hv's scalar projected onto J.
func (k HKdf) DerivePKeyJ(hv ecc.Hash) ecc.Point {
	return ecc.J().Mul(k.DeriveKeyHash(hv))
}

// DeriveTag derives the tag-KDF recovery scalar for id, used by output
// seeding/recovery rather than blinding-factor derivation.
func (k HKdf) DeriveTag(id ID) ecc.Scalar {
	return k.deriveScalar("kid-tag", id)
}

// CreateChild derives the child KDF for subkey index iSubkey from parent,
// matching the original's MasterKey::get_Child(Key::IKdf&, Key::Index).
// Subkey 0 is the master key by convention: it returns parent unchanged
// rather than re-deriving, since the original treats m_SubIdx==0 as "use
// the master directly".
func CreateChild(parent HKdf, iSubkey uint32) HKdf {
	if iSubkey == 0 {
		return parent
	}
	o := ecc.NewOracle()
	o.WriteString("child-kdf")
	o.WriteHash(ecc.Hash(parent.secret.Bytes()))
	o.WriteUint32(iSubkey)
	childSecret := o.ReadScalar()

	// BB2.1 scheme-V0 coercion: the original's get_Child special-cases a
	// subkey whose derived scalar would be zero (vanishingly unlikely,
	// but the original guards it explicitly) by folding in the parent's
	// cofactor so the result can never degenerate to the identity key.
	if childSecret.IsZero() {
		childSecret = parent.cofactor
	}
	return HKdf{secret: childSecret, cofactor: parent.cofactor}
}

// GetChildForIDV resolves the child KDF that owns kidv's subkey index,
// matching the original's MasterKey::get_Child(Ptr&, const Key::IDV&)
// overload used by SwitchCommitment.CreateInternal.
func GetChildForIDV(parent HKdf, kidv IDV) HKdf {
	return CreateChild(parent, kidv.SubIdx)
}
