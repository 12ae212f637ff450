package rangeproof

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
)

// RefPublic is the reference Public adapter used in tests: it binds the
// seed's AssetID, the value and the commitment into a tag via a fresh
// Oracle transcript (seed.Oracle is not used, see below). It is not a
// transparent-proof scheme in the cryptographic sense — the value is
// already public by definition for this variant — only the binding tag
// needs to round-trip.
type RefPublic struct {
	tag ecc.Hash
}

var _ Public = RefPublic{}

// The reference adapter deliberately does not consume seed.Oracle: Oracle
// reads ratchet its state (see pkg/ecc), so a shared Oracle pointer
// touched by more than one of these tag functions within the same Create
// call would desync from a caller that only re-derives one of them at
// IsValid/Recover time. Binding directly against the seed's explicit
// fields (AssetID, IDV, RecoveryTag) keeps Create/IsValid/Recover
// order-independent; seed.Oracle remains part of the interface for a real
// prover, which consumes it exactly once per proof.

func publicTag(seed Seed, value uint64, commitment ecc.Point) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("rangeproof-public")
	o.WriteHash(seed.AssetID)
	o.WritePoint(commitment)
	o.WriteUint64(value)
	return o.ReadHash()
}

// Create produces a RefPublic proof for value against commitment.
func (RefPublic) Create(seed Seed, value uint64, commitment ecc.Point) Public {
	return RefPublic{tag: publicTag(seed, value, commitment)}
}

// IsValid reports whether the proof was produced for value and commitment.
func (p RefPublic) IsValid(seed Seed, value uint64, commitment ecc.Point) bool {
	return p.tag == publicTag(seed, value, commitment)
}

// RefConfidential is the reference Confidential adapter used in tests. It
// masks the key-identifier tuple with a one-time pad derived from the
// seed's RecoveryTag, so a party re-deriving the same RecoveryTag (the tag
// KDF's public-only derivation, not the private spending scalar) can
// Recover it — the property Output.Recover needs, since it rebuilds its
// seed with a zero Blind — without implementing an actual
// bulletproof-style zero-knowledge range proof (the explicit Non-goal).
type RefConfidential struct {
	maskedIdx    uint64
	maskedType   uint32
	maskedSubIdx uint32
	maskedValue  uint64
	tag          ecc.Hash
}

var _ Confidential = RefConfidential{}

// confidentialMask derives the one-time pad masking a seed's key-identifier
// tuple from RecoveryTag and AssetID alone, deliberately excluding Blind:
// Output.Create (real sk) and Output.Recover (zero sk) must derive the
// identical pad, so anything Create knows that Recover doesn't can't be an
// input here.
func confidentialMask(seed Seed) (idx uint64, typ, subIdx uint32, value uint64) {
	o := ecc.NewOracle()
	o.WriteString("rangeproof-confidential-mask")
	o.WriteHash(seed.AssetID)
	o.WriteHash(seed.RecoveryTag)
	h := o.ReadHash()

	for i := 0; i < 8; i++ {
		idx |= uint64(h[i]) << (8 * i)
		value |= uint64(h[i+8]) << (8 * i)
	}
	typ = uint32(h[16]) | uint32(h[17])<<8 | uint32(h[18])<<16 | uint32(h[19])<<24
	subIdx = uint32(h[20]) | uint32(h[21])<<8 | uint32(h[22])<<16 | uint32(h[23])<<24
	return idx, typ, subIdx, value
}

func confidentialTag(seed Seed, commitment ecc.Point) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("rangeproof-confidential-tag")
	o.WriteHash(seed.AssetID)
	o.WritePoint(commitment)
	o.WriteUint64(seed.IDV.Idx)
	o.WriteUint32(uint32(seed.IDV.Type))
	o.WriteUint32(seed.IDV.SubIdx)
	o.WriteUint64(seed.IDV.Value)
	o.WriteHash(seed.RecoveryTag)
	return o.ReadHash()
}

// Create produces a RefConfidential proof for seed.IDV against commitment.
func (RefConfidential) Create(seed Seed, commitment ecc.Point) Confidential {
	idxMask, typeMask, subIdxMask, valueMask := confidentialMask(seed)
	return RefConfidential{
		maskedIdx:    seed.IDV.Idx ^ idxMask,
		maskedType:   uint32(seed.IDV.Type) ^ typeMask,
		maskedSubIdx: seed.IDV.SubIdx ^ subIdxMask,
		maskedValue:  seed.IDV.Value ^ valueMask,
		tag:          confidentialTag(seed, commitment),
	}
}

// IsValid reports whether the proof is well-formed for commitment. The
// reference adapter cannot check range-membership without knowing the
// seed, so this only confirms the proof's tag hasn't been corrupted
// relative to a tag recomputed from a candidate seed.
func (p RefConfidential) IsValid(seed Seed, commitment ecc.Point) bool {
	return p.tag == confidentialTag(seed, commitment)
}

// Recover extracts the key-identifier tuple back out of the proof using
// seed.RecoveryTag, which Output.Recover can supply without the private
// spending scalar.
func (p RefConfidential) Recover(seed Seed) (keys.IDV, bool) {
	idxMask, typeMask, subIdxMask, valueMask := confidentialMask(seed)
	idv := keys.IDV{
		ID: keys.ID{
			Idx:    p.maskedIdx ^ idxMask,
			Type:   keys.Type(p.maskedType ^ typeMask),
			SubIdx: p.maskedSubIdx ^ subIdxMask,
		},
		Value: p.maskedValue ^ valueMask,
	}
	return idv, true
}
