package tx

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/rangeproof"
	"github.com/aquila-chain/ledgercore/pkg/signature"
	"github.com/aquila-chain/ledgercore/pkg/switchcommit"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// Subtype distinguishes the kernel variants. Rather than the original's
// open hierarchy of TxKernel subclasses, Kernel is a single tagged-union
// struct — spec.md §9's redesign guidance for a closed, enumerable set of
// kernel shapes.
type Subtype uint32

const (
	SubtypeStd Subtype = iota
	SubtypeAssetEmit
	SubtypeShieldedOutput
	SubtypeShieldedInput
)

// HashLock gates a kernel's validity behind revealing the preimage of a
// hash (or, once revealed, the image itself — m_IsImage in the original).
type HashLock struct {
	Value   ecc.Hash
	IsImage bool
}

// Image returns the hash-locked image: Value itself if it already is one,
// or H(Value) otherwise.
func (hl HashLock) Image() ecc.Hash {
	if hl.IsImage {
		return hl.Value
	}
	o := ecc.NewOracle()
	o.WriteHash(hl.Value)
	return o.ReadHash()
}

// Cmp orders two HashLocks by their raw Value.
func (hl HashLock) Cmp(other HashLock) txbase.Cmp {
	return txbase.CmpBytes(hl.Value[:], other.Value[:])
}

// RelativeLock ties a kernel to a minimum number of blocks since a
// referenced output's confirmation (a CLTV/CSV-style relative timelock).
type RelativeLock struct {
	ID         ecc.Hash
	LockHeight txbase.Height
}

// Cmp orders two RelativeLocks by (ID, LockHeight).
func (rl RelativeLock) Cmp(other RelativeLock) txbase.Cmp {
	if c := txbase.CmpBytes(rl.ID[:], other.ID[:]); c != txbase.CmpEqual {
		return c
	}
	return txbase.CmpUint64(uint64(rl.LockHeight), uint64(other.LockHeight))
}

// ShieldedSerial is the public half of a shielded TXO's serial number: a
// spend key and the signature proving its owner authorized the output.
type ShieldedSerial struct {
	SerialPub ecc.Point
	Signature signature.Signature
}

// IsValid reports whether the serial's signature checks out, binding it to
// its own public key — the original's SerialPub::IsValid.
func (s ShieldedSerial) IsValid() bool {
	o := ecc.NewOracle()
	o.WriteString("shielded-serial")
	o.WritePoint(s.SerialPub)
	return s.Signature.IsValid(s.SerialPub, o.ReadHash())
}

// ShieldedTxoDescriptor is the shielded-output payload a
// SubtypeShieldedOutput kernel carries: a Pedersen commitment, the serial
// number, and the range proof binding the hidden value.
type ShieldedTxoDescriptor struct {
	Commitment ecc.Point
	Serial     ShieldedSerial
	RangeProof rangeproof.Confidential
}

// Internal is unhashed-but-derived bookkeeping: the kernel's own ID, which
// UpdateID/MsgToID compute from the rest of the kernel's fields.
type Internal struct {
	ID ecc.Hash
}

// Kernel is a transaction kernel: the excess-commitment carrier that binds
// a signature, a fee, a height-range validity window, and — depending on
// Subtype — either a Schnorr kernel signature (Std), a 2-key aggregate
// asset-emission signature (AssetEmit), or a shielded in/out descriptor.
type Kernel struct {
	Subtype  Subtype
	Internal Internal

	Fee      txbase.Amount
	Height   txbase.HeightRange
	CanEmbed bool
	Nested   []*Kernel

	// SubtypeStd
	Commitment    ecc.Point
	Signature     signature.Signature
	HashLockV     *HashLock
	RelativeLockV *RelativeLock

	// SubtypeAssetEmit / SubtypeShieldedOutput / SubtypeShieldedInput share
	// Msg: it's the hash UpdateMsg folds every non-Std field into, and
	// MsgToID folds into the kernel's own Internal.ID.
	Msg ecc.Hash

	// SubtypeAssetEmit
	AssetID ecc.Hash
	Value   int64 // signed: positive mints, negative burns

	// SubtypeShieldedOutput
	ShieldedOutput *ShieldedTxoDescriptor

	// SubtypeShieldedInput
	WindowEnd               uint64
	ShieldedInputCommitment ecc.Point // the spend proof's own commitment, Y-bit flipped on verify
}

// NewStdKernel returns a zero-value SubtypeStd kernel ready for Sign.
func NewStdKernel() *Kernel {
	k := &Kernel{Subtype: SubtypeStd}
	k.Height.Reset()
	return k
}

// hashBase folds the fields every subtype binds identically: fee and
// height range (the original's TxKernel::HashBase).
func (k *Kernel) hashBase(o *ecc.Oracle) {
	o.WriteUint64(uint64(k.Fee))
	o.WriteUint64(uint64(k.Height.Min))
	o.WriteUint64(uint64(k.Height.Max))
}

// hashNested folds each nested kernel's own ID, terminated by a sentinel
// "no more" flag — the original's TxKernel::HashNested.
func (k *Kernel) hashNested(o *ecc.Oracle) {
	for _, n := range k.Nested {
		o.WriteBool(false)
		n.UpdateID()
		o.WriteHash(n.Internal.ID)
	}
	o.WriteBool(true)
}

// UpdateID recomputes Internal.ID from k's fields: for SubtypeStd directly
// (HashBase, flags, commitment, lock image, nested), matching
// TxKernelStd::UpdateID; for the non-Std subtypes via updateMsg/msgToID.
// Callers building a ShieldedOutput/ShieldedInput kernel by hand (rather
// than through SignStd/SignAssetEmit) must call this once every field is
// set, before IsValid or Cmp.
func (k *Kernel) UpdateID() {
	if k.Subtype != SubtypeStd {
		k.updateMsg()
		k.msgToID()
		return
	}

	o := ecc.NewOracle()
	k.hashBase(o)

	var flags uint32
	if k.HashLockV != nil {
		flags |= 1
	}
	if k.RelativeLockV != nil {
		flags |= 2
	}
	if k.CanEmbed {
		flags |= 4
	}

	o.WritePoint(k.Commitment)
	o.WriteUint64(0) // former asset-emission field, always zero for Std
	o.WriteUint32(flags)

	if k.HashLockV != nil {
		o.WriteHash(k.HashLockV.Image())
	}
	if k.RelativeLockV != nil {
		o.WriteHash(k.RelativeLockV.ID)
		o.WriteUint64(uint64(k.RelativeLockV.LockHeight))
	}

	k.hashNested(o)
	k.Internal.ID = o.ReadHash()
}

// nonStdCommitmentTag is the domain-separation tag substituting for the
// original's "deliberately invalid point (Y=1)" sentinel: ecc.Point only
// ever represents valid curve points, so a fixed string plays the same
// role of marking this absorption as "not a real commitment".
const nonStdCommitmentTag = "tx-kernel-nonstd-sentinel"

// updateMsg recomputes Msg for a non-Std kernel: HashBase, a sentinel in
// place of a per-subtype commitment slot, the subtype tag, nested kernels,
// then each subtype's own HashSelfForMsg contribution.
func (k *Kernel) updateMsg() {
	o := ecc.NewOracle()
	k.hashBase(o)
	o.WriteString(nonStdCommitmentTag)
	o.WriteUint32(uint32(k.Subtype))
	k.hashNested(o)
	k.hashSelfForMsg(o)
	k.Msg = o.ReadHash()
}

// msgToID folds Msg plus each subtype's HashSelfForID contribution into
// Internal.ID.
func (k *Kernel) msgToID() {
	o := ecc.NewOracle()
	o.WriteHash(k.Msg)
	k.hashSelfForID(o)
	k.Internal.ID = o.ReadHash()
}

func (k *Kernel) hashSelfForMsg(o *ecc.Oracle) {
	switch k.Subtype {
	case SubtypeAssetEmit:
		o.WritePoint(k.Commitment)
		o.WriteHash(k.AssetID)
		o.WriteUint64(uint64(k.Value))
	case SubtypeShieldedOutput:
		o.WritePoint(k.ShieldedOutput.Commitment)
		o.WritePoint(k.ShieldedOutput.Serial.SerialPub)
		o.WritePoint(k.ShieldedOutput.Serial.Signature.NoncePub)
		o.WriteHash(ecc.Hash(k.ShieldedOutput.Serial.Signature.K.Bytes()))
	case SubtypeShieldedInput:
		o.WriteUint64(k.WindowEnd)
	}
}

// hashSelfForID folds the part of a kernel's per-subtype payload that
// doesn't affect its transaction balance but must still be bound into its
// own ID — the signature for AssetEmit, the range proof's commitment for
// ShieldedOutput (its proof bytes aren't individually addressable through
// the rangeproof collaborator interface, so the commitment it's bound to
// stands in), the spend-proof commitment for ShieldedInput.
func (k *Kernel) hashSelfForID(o *ecc.Oracle) {
	switch k.Subtype {
	case SubtypeAssetEmit:
		o.WritePoint(k.Signature.NoncePub)
		o.WriteHash(ecc.Hash(k.Signature.K.Bytes()))
	case SubtypeShieldedOutput:
		o.WritePoint(k.ShieldedOutput.Commitment)
	case SubtypeShieldedInput:
		o.WritePoint(k.ShieldedInputCommitment)
	}
}

// isValidBase checks the embed/nesting/height-range rules shared by every
// subtype and folds nested kernels' excess into exc, matching
// TxKernel::IsValidBase.
//
// Open Question (a) decision: the original's pre-Fork2 compatibility
// branch folds nested excess into the parent's own commitment point
// instead of into exc, to preserve bit-for-bit compatibility with
// already-mined pre-Fork2 blocks containing (extremely rare) nested
// kernels. Since this core carries no wire format and validates no
// historical chain state, there is nothing to stay bit-compatible with;
// both branches are collapsed into the single Fork2+ behavior (fold into
// exc) here.
func (k *Kernel) isValidBase(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	if hScheme < params.Fork1Height && k.CanEmbed {
		return exc, false
	}

	if parent != nil {
		if !k.CanEmbed {
			return exc, false
		}
		if !parent.Height.Contains(k.Height) {
			return exc, false
		}
	} else if hScheme >= params.Fork2Height && k.Height.Min < params.Fork2Height {
		return exc, false
	}

	if len(k.Nested) > 0 {
		excNested := ecc.Zero
		var prev *Kernel
		for _, n := range k.Nested {
			if hScheme < params.Fork2Height && prev != nil && prev.Cmp(n, params) == txbase.CmpGreater {
				return exc, false
			}
			prev = n

			var ok bool
			excNested, ok = n.IsValid(hScheme, params, excNested, k)
			if !ok {
				return exc, false
			}
		}
		exc = exc.Add(excNested)
	}

	return exc, true
}

// IsValid dispatches to the subtype-specific validity check, folding this
// kernel's own excess contribution into exc and returning the updated
// running sum.
func (k *Kernel) IsValid(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	switch k.Subtype {
	case SubtypeStd:
		return k.isValidStd(hScheme, params, exc, parent)
	case SubtypeAssetEmit:
		return k.isValidAssetEmit(hScheme, params, exc, parent)
	case SubtypeShieldedOutput:
		return k.isValidShieldedOutput(hScheme, params, exc, parent)
	case SubtypeShieldedInput:
		return k.isValidShieldedInput(hScheme, params, exc, parent)
	default:
		return exc, false
	}
}

func (k *Kernel) isValidStd(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	if hScheme < params.Fork1Height && k.RelativeLockV != nil {
		return exc, false
	}
	if k.Commitment.IsZero() {
		return exc, false
	}

	exc = exc.Add(k.Commitment)

	exc, ok := k.isValidBase(hScheme, params, exc, parent)
	if !ok {
		return exc, false
	}

	if !k.Signature.IsValid(k.Commitment, k.Internal.ID) {
		return exc, false
	}
	return exc, true
}

func (k *Kernel) isValidAssetEmit(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	exc, ok := k.isValidBase(hScheme, params, exc, parent)
	if !ok {
		return exc, false
	}
	if hScheme < params.Fork2Height || !params.CAEnabled {
		return exc, false
	}
	if k.Value == 0 || k.AssetID.IsZero() {
		return exc, false
	}
	if k.Commitment.IsZero() {
		return exc, false
	}
	exc = exc.Add(k.Commitment)

	assetKey, err := assetIDPubKey(k.AssetID)
	if err != nil {
		return exc, false
	}

	if !signature.IsValidAggregate(k.Signature, k.Commitment, assetKey, k.Msg) {
		return exc, false
	}

	hGen := assetGenerator(k.AssetID, params.CADeposit)

	val := k.Value
	if val < 0 {
		hGen = hGen.Negate()
		val = -val
	}
	exc = exc.Add(hGen.Mul(ecc.ScalarFromUint64(uint64(val))))

	return exc, true
}

func (k *Kernel) isValidShieldedOutput(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	exc, ok := k.isValidBase(hScheme, params, exc, parent)
	if !ok {
		return exc, false
	}
	if hScheme < params.Fork2Height || !params.ShieldedEnabled {
		return exc, false
	}
	if k.ShieldedOutput == nil || k.ShieldedOutput.Commitment.IsZero() {
		return exc, false
	}
	exc = exc.Add(k.ShieldedOutput.Commitment)

	if !k.ShieldedOutput.Serial.IsValid() {
		return exc, false
	}

	seed := rangeproof.Seed{Oracle: shieldedMsgOracle(k.Msg)}
	if !k.ShieldedOutput.RangeProof.IsValid(seed, k.ShieldedOutput.Commitment) {
		return exc, false
	}
	return exc, true
}

func (k *Kernel) isValidShieldedInput(hScheme txbase.Height, params Params, exc ecc.Point, parent *Kernel) (ecc.Point, bool) {
	exc, ok := k.isValidBase(hScheme, params, exc, parent)
	if !ok {
		return exc, false
	}
	if hScheme < params.Fork2Height || !params.ShieldedEnabled {
		return exc, false
	}
	// The spend proof's own commitment is negated on verify (spending
	// flips the sign of the contribution relative to its creation as an
	// output); spend proof verification itself is a separate collaborator
	// concern this core does not perform here, matching the original's
	// comment that "Spend proof verification is not done here".
	if k.ShieldedInputCommitment.IsZero() {
		return exc, false
	}
	exc = exc.Add(k.ShieldedInputCommitment.Negate())
	return exc, true
}

// shieldedMsgOracle seeds an Oracle with msg, the binding a shielded
// output's range proof verifies against (the original's
// `ECC::Oracle oracle; oracle << m_Msg;`).
func shieldedMsgOracle(msg ecc.Hash) *ecc.Oracle {
	o := ecc.NewOracle()
	o.WriteHash(msg)
	return o
}

// assetIDPubKey reinterprets an asset id as a curve point's X coordinate
// with even Y, the original's `pkAsset.m_X = m_AssetID; pkAsset.m_Y = 0`.
func assetIDPubKey(assetID ecc.Hash) (ecc.Point, error) {
	var b [33]byte
	b[0] = 0x02
	copy(b[1:], assetID[:])
	return ecc.Import(b)
}

// assetGenerator derives the per-asset value generator an AssetEmit
// kernel's value term is expressed in, negated (minting removes a
// positive multiple of hGen from the excess) and, when CADeposit is set,
// offset by the canonical H generator (the asset being "traded for" the
// base currency).
func assetGenerator(assetID ecc.Hash, caDeposit bool) ecc.Point {
	hGen := switchcommit.HGenFromAID(assetID).Negate()
	if caDeposit {
		hGen = hGen.Add(ecc.H())
	}
	return hGen
}

// AddStats folds k and its nested kernels into s, matching
// TxKernel::AddStats plus each non-Std subtype's override that also bumps
// the input/output shielded counters.
func (k *Kernel) AddStats(s *txbase.TxStats) {
	s.Kernels++
	s.Fee += k.Fee

	switch k.Subtype {
	case SubtypeShieldedOutput:
		s.Outputs++
		s.OutputsShielded++
	case SubtypeShieldedInput:
		s.Inputs++
		s.InputsShielded++
	}

	for _, n := range k.Nested {
		n.AddStats(s)
	}
}

// Cmp gives kernels their canonical total order. Fork2Height is passed
// explicitly (params.Fork2Height) rather than read from a process-wide
// singleton, matching this package's Params-parameterized validation
// elsewhere. At Fork2+, a kernel's own ID is the sole ordering key, since
// by then IDs are expected unique; pre-Fork2 kernels always sort below
// Fork2+ ones and order among themselves by subtype then per-subtype
// fields.
func (k *Kernel) Cmp(other *Kernel, params Params) txbase.Cmp {
	selfPost := k.Height.Min >= params.Fork2Height
	otherPost := other.Height.Min >= params.Fork2Height

	if selfPost {
		if !otherPost {
			return txbase.CmpGreater
		}
		return txbase.CmpBytes(k.Internal.ID[:], other.Internal.ID[:])
	}
	if otherPost {
		return txbase.CmpLess
	}

	if c := txbase.CmpUint64(uint64(k.Subtype), uint64(other.Subtype)); c != txbase.CmpEqual {
		return c
	}
	return k.cmpSubtype(other, params)
}

// cmpSubtype breaks ties between same-subtype kernels. Only SubtypeStd
// carries extra comparable fields beyond the ones Cmp already compared
// (non-Std subtypes are fully ordered by their ID once subtype matches,
// mirroring the original's empty TxKernel::cmp_Subtype default).
func (k *Kernel) cmpSubtype(other *Kernel, params Params) txbase.Cmp {
	if k.Subtype != SubtypeStd {
		return txbase.CmpBytes(k.Internal.ID[:], other.Internal.ID[:])
	}

	ka, ob := k.Commitment.Bytes(), other.Commitment.Bytes()
	if c := txbase.CmpBytes(ka[:], ob[:]); c != txbase.CmpEqual {
		return c
	}
	sa, sb := k.Signature.K.Bytes(), other.Signature.K.Bytes()
	if c := txbase.CmpBytes(sa[:], sb[:]); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(uint64(k.Fee), uint64(other.Fee)); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(uint64(k.Height.Min), uint64(other.Height.Min)); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(uint64(k.Height.Max), uint64(other.Height.Max)); c != txbase.CmpEqual {
		return c
	}

	n := len(k.Nested)
	if len(other.Nested) < n {
		n = len(other.Nested)
	}
	for i := 0; i < n; i++ {
		if c := k.Nested[i].Cmp(other.Nested[i], params); c != txbase.CmpEqual {
			return c
		}
	}
	if c := txbase.CmpUint64(uint64(len(k.Nested)), uint64(len(other.Nested))); c != txbase.CmpEqual {
		return c
	}

	if c := cmpLockPtr(k.HashLockV, other.HashLockV); c != txbase.CmpEqual {
		return c
	}
	return cmpRelativeLockPtr(k.RelativeLockV, other.RelativeLockV)
}

func cmpLockPtr(a, b *HashLock) txbase.Cmp {
	switch {
	case a == nil && b == nil:
		return txbase.CmpEqual
	case a == nil:
		return txbase.CmpLess
	case b == nil:
		return txbase.CmpGreater
	default:
		return a.Cmp(*b)
	}
}

func cmpRelativeLockPtr(a, b *RelativeLock) txbase.Cmp {
	switch {
	case a == nil && b == nil:
		return txbase.CmpEqual
	case a == nil:
		return txbase.CmpLess
	case b == nil:
		return txbase.CmpGreater
	default:
		return a.Cmp(*b)
	}
}

// SignStd finalizes a SubtypeStd kernel: derives its commitment from sk,
// updates its ID, and signs that ID — TxKernelStd::Sign.
func (k *Kernel) SignStd(sk ecc.Scalar) {
	k.Subtype = SubtypeStd
	k.Commitment = sk.BaseMul()
	k.UpdateID()
	k.Signature = signature.Sign(sk, k.Internal.ID)
}

// SignAssetEmit finalizes a SubtypeAssetEmit kernel: derives its
// commitment from sk, updates Msg, signs Msg under the aggregate key
// sk+skAsset, then folds the signature into Internal.ID —
// TxKernelAssetEmit::Sign.
func (k *Kernel) SignAssetEmit(sk, skAsset ecc.Scalar, assetID ecc.Hash, value int64) {
	k.Subtype = SubtypeAssetEmit
	k.AssetID = assetID
	k.Value = value
	k.Commitment = sk.BaseMul()
	k.updateMsg()
	k.Signature = signature.SignAggregate(sk, skAsset, k.Msg)
	k.msgToID()
}

// Clone returns a deep copy of k, recursively cloning nested kernels —
// TxKernel::CopyFrom plus each subtype's own Clone override.
func (k *Kernel) Clone() *Kernel {
	c := &Kernel{
		Subtype:  k.Subtype,
		Internal: k.Internal,
		Fee:      k.Fee,
		Height:   k.Height,
		CanEmbed: k.CanEmbed,

		Commitment: k.Commitment,
		Signature:  k.Signature,
		Msg:        k.Msg,

		AssetID: k.AssetID,
		Value:   k.Value,

		WindowEnd:               k.WindowEnd,
		ShieldedInputCommitment: k.ShieldedInputCommitment,
	}
	if k.HashLockV != nil {
		v := *k.HashLockV
		c.HashLockV = &v
	}
	if k.RelativeLockV != nil {
		v := *k.RelativeLockV
		c.RelativeLockV = &v
	}
	if k.ShieldedOutput != nil {
		v := *k.ShieldedOutput
		c.ShieldedOutput = &v
	}
	if len(k.Nested) > 0 {
		c.Nested = make([]*Kernel, len(k.Nested))
		for i, n := range k.Nested {
			c.Nested[i] = n.Clone()
		}
	}
	return c
}

// Walker visits every kernel in depth-first pre-order (k itself, then its
// nested kernels). It returns false as soon as OnKernel reports false,
// short-circuiting the walk.
type Walker struct {
	OnKernel func(k *Kernel) bool
}

// Walk runs w over k and then its nested kernels.
func (w Walker) Walk(k *Kernel) bool {
	if !w.OnKernel(k) {
		return false
	}
	for _, n := range k.Nested {
		if !w.Walk(n) {
			return false
		}
	}
	return true
}

// WalkAll runs w over every kernel in ks in order.
func (w Walker) WalkAll(ks []*Kernel) bool {
	for _, k := range ks {
		if !w.Walk(k) {
			return false
		}
	}
	return true
}
