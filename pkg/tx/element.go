// Package tx implements the transaction element model: inputs, outputs,
// the kernel hierarchy, transaction bundling/normalization, and the
// Context-parameterized validation that sums signed excesses across a
// transaction.
package tx

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
	"github.com/aquila-chain/ledgercore/pkg/rangeproof"
	"github.com/aquila-chain/ledgercore/pkg/switchcommit"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// TxElement is the base every Input/Output embeds: a commitment, ordered
// by its byte encoding.
type TxElement struct {
	Commitment ecc.Point
}

// Cmp orders two elements by their commitment's compressed bytes.
func (e TxElement) Cmp(other TxElement) txbase.Cmp {
	a, b := e.Commitment.Bytes(), other.Commitment.Bytes()
	return txbase.CmpBytes(a[:], b[:])
}

// Input spends a prior output's commitment. Internal is bookkeeping the
// wallet/node attaches (e.g. the maturity of the output it spends) and is
// never hashed — it carries no consensus meaning of its own.
type Input struct {
	TxElement
	Internal InputInternal
}

// InputInternal is unhashed local bookkeeping attached to an Input.
type InputInternal struct {
	Maturity txbase.Height
}

// Cmp orders inputs by commitment.
func (in Input) Cmp(other Input) txbase.Cmp {
	return in.TxElement.Cmp(other.TxElement)
}

// Clone returns a deep copy of in.
func (in Input) Clone() Input {
	return Input{TxElement: in.TxElement, Internal: in.Internal}
}

// Output is a transaction output: a commitment plus flags, an incubation
// delay, an asset id, and exactly one of a Confidential or Public range
// proof (spec.md §3).
type Output struct {
	TxElement
	Coinbase     bool
	RecoveryOnly bool
	Incubation   txbase.Height
	AssetID      ecc.Hash

	Confidential rangeproof.Confidential // nil unless this is a confidential output
	Public       rangeproof.Public       // nil unless this is a public output
	PublicValue  uint64                  // valid only when Public != nil
}

// Cmp orders outputs by (commitment, coinbase, recovery-only, incubation,
// asset id, confidential-present, public-present), matching the
// original's Output::cmp field order.
func (o Output) Cmp(v Output) txbase.Cmp {
	if c := o.TxElement.Cmp(v.TxElement); c != txbase.CmpEqual {
		return c
	}
	if c := cmpBool(o.Coinbase, v.Coinbase); c != txbase.CmpEqual {
		return c
	}
	if c := cmpBool(o.RecoveryOnly, v.RecoveryOnly); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(uint64(o.Incubation), uint64(v.Incubation)); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpBytes(o.AssetID[:], v.AssetID[:]); c != txbase.CmpEqual {
		return c
	}
	if c := cmpBool(o.Confidential != nil, v.Confidential != nil); c != txbase.CmpEqual {
		return c
	}
	return cmpBool(o.Public != nil, v.Public != nil)
}

func cmpBool(a, b bool) txbase.Cmp {
	switch {
	case a == b:
		return txbase.CmpEqual
	case !a:
		return txbase.CmpLess
	default:
		return txbase.CmpGreater
	}
}

// AddStats folds o into s, matching the original's Output::AddStats: a
// coinbase output with a public proof adds its value into the wide
// coinbase accumulator.
func (o Output) AddStats(s *txbase.TxStats) {
	s.Outputs++
	if o.Coinbase && o.Public != nil {
		s.Coinbase = s.Coinbase.AddAmount(txbase.Amount(o.PublicValue))
	}
}

// Prepare seeds the Oracle Create/IsValid/Recover thread through the
// range-proof collaborator: the incubation delta always, and — at Fork1+
// — the commitment itself, matching the original's Output::Prepare.
func (o Output) Prepare(hScheme txbase.Height, params Params) *ecc.Oracle {
	oracle := ecc.NewOracle()
	oracle.WriteUint64(uint64(o.Incubation))
	if hScheme >= params.Fork1Height {
		oracle.WritePoint(o.Commitment)
	}
	return oracle
}

// GenerateSeedKid derives the range-proof seed for commitment: hash the
// commitment, derive a tag-KDF public key from that hash, then hash the
// derived key. Matches the original's Output::GenerateSeedKid.
func GenerateSeedKid(commitment ecc.Point, tagKdf keys.IPKdf) ecc.Hash {
	o1 := ecc.NewOracle()
	o1.WritePoint(commitment)
	seed := o1.ReadHash()

	sk := tagKdf.DerivePKeyG(seed)

	o2 := ecc.NewOracle()
	o2.WritePoint(sk)
	return o2.ReadHash()
}

// buildSeed assembles the rangeproof.Seed shared by Create/IsValid/
// Recover: the blinding scalar sk (the real spending scalar at Create
// time, zero at Recover time), the key-identifier tuple kidv (known in
// full at Create time; zero-valued at Recover time, since recovering it
// is the whole point), the asset id, an Oracle built by Prepare, and
// RecoveryTag — GenerateSeedKid's output, identical whether sk is real or
// zero since it only depends on the commitment and the public tag KDF —
// the same "hash commitment then mix in a tag-kdf-derived scalar"
// procedure spec.md §4.3 describes.
func buildSeed(o Output, hScheme txbase.Height, params Params, sk ecc.Scalar, kidv keys.IDV, tagKdf keys.IPKdf) rangeproof.Seed {
	tag := GenerateSeedKid(o.Commitment, tagKdf)

	oracle := o.Prepare(hScheme, params)
	oracle.WriteHash(tag)

	return rangeproof.Seed{
		Blind:       sk,
		IDV:         kidv,
		Oracle:      oracle,
		AssetID:     o.AssetID,
		RecoveryTag: tag,
	}
}

// CreateOutput builds a new Output for kidv, computing its switch
// commitment and range proof. bPublic forces a Public proof even when the
// output is not coinbase; coinbase outputs are always Public regardless
// of bPublic (spec.md §3: "coinbase ⇒ Public proof").
func CreateOutput(
	hScheme txbase.Height,
	params Params,
	coinKdf keys.IKdf,
	kidv keys.IDV,
	tagKdf keys.IPKdf,
	assetID ecc.Hash,
	coinbase bool,
	bPublic bool,
	newPublic func() rangeproof.Public,
	newConfidential func() rangeproof.Confidential,
) (Output, ecc.Scalar) {
	sc := switchcommit.New(assetID)
	sk, comm := sc.CreateWithCommitment(coinKdf, kidv)

	o := Output{
		TxElement: TxElement{Commitment: comm},
		Coinbase:  coinbase,
		AssetID:   assetID,
	}

	seed := buildSeed(o, hScheme, params, sk, kidv, tagKdf)

	if bPublic || coinbase {
		o.Public = newPublic().Create(seed, kidv.Value, comm)
		o.PublicValue = kidv.Value
	} else {
		o.Confidential = newConfidential().Create(seed, comm)
	}

	return o, sk
}

// IsValid checks o's commitment imports as a non-zero point and that the
// active range proof validates against it, matching the original's
// Output::IsValid: coinbase requires Public, Confidential and Public are
// mutually exclusive, and Public requires AllowPublicUtxos unless coinbase.
// seed must be built the same way Create built it (buildSeed, with the
// same sk the proof was created under — for Public proofs sk is unused by
// verification and may be zero).
func (o Output) IsValid(hScheme txbase.Height, params Params, seed rangeproof.Seed) bool {
	if o.Commitment.IsZero() {
		return false
	}

	if o.Confidential != nil {
		if o.Coinbase || o.Public != nil {
			return false
		}
		return o.Confidential.IsValid(seed, o.Commitment)
	}

	if o.Public == nil {
		return false
	}
	if !params.AllowPublicUtxos && !o.Coinbase {
		return false
	}
	return o.Public.IsValid(seed, o.PublicValue, o.Commitment)
}

// Recover recovers kidv (the full key-identifier tuple, not just the
// value) from o's range proof. Confidential.Recover needs no candidate
// blinding scalar or candidate kidv — it hands its own back, reconstructed
// from RecoveryTag alone — so seed is built with a zero Blind and a zero
// kidv; Public proofs already expose their value directly and don't
// consult seed at all.
func (o Output) Recover(hScheme txbase.Height, params Params, tagKdf keys.IPKdf) (keys.IDV, bool) {
	seed := buildSeed(o, hScheme, params, ecc.Scalar{}, keys.IDV{}, tagKdf)
	if o.Confidential != nil {
		return o.Confidential.Recover(seed)
	}
	if o.Public != nil {
		return keys.IDV{Value: o.PublicValue}, true
	}
	return keys.IDV{}, false
}

// VerifyRecovered reconstructs o's commitment from coinKdf and kidv via
// switch-commitment recovery and checks it against the stored commitment,
// matching the original's negate-and-add-then-compare-to-zero algorithm.
func (o Output) VerifyRecovered(coinKdf keys.IPKdf, kidv keys.IDV) bool {
	recovered := switchcommit.New(o.AssetID).Recover(coinKdf, kidv)
	diff := o.Commitment.Add(recovered.Negate())
	return diff.IsZero()
}

// MinMaturity returns the earliest height o may be spent at, given the
// height h it was included at: coinbase and non-coinbase maturity offsets
// plus the incubation delta, all saturating (spec.md §3).
func (o Output) MinMaturity(h txbase.Height, params Params) txbase.Height {
	if o.Coinbase {
		h = txbase.HeightAdd(h, params.MaturityCoinbase)
	} else {
		h = txbase.HeightAdd(h, params.MaturityStd)
	}
	return txbase.HeightAdd(h, o.Incubation)
}

// Clone returns a deep copy of o (the range-proof collaborators are
// interface values here, assumed immutable once created).
func (o Output) Clone() Output {
	return o
}
