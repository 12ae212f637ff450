// Package rules holds the process-wide consensus parameters: the emission
// curve, the fork height/checksum table, maturity and difficulty-adjustment
// settings, and the bridge (TxParams) that hands the subset of these a
// transaction validates against to pkg/tx without pkg/tx importing this
// package — see pkg/tx/params.go.
package rules

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/tx"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// Coin is the number of smallest units per whole coin.
const Coin txbase.Amount = 100000000

// numForks is the size of the fork table: genesis (index 0), fork1, fork2,
// plus one reserved slot for a future fork not yet scheduled.
const numForks = 4

// HeightHash pairs a fork's activation height with the checksum hash
// UpdateChecksum computes for it — Rules::HeightHash in the original.
type HeightHash struct {
	Height txbase.Height
	Hash   ecc.Hash
}

// Emission describes the block-reward curve: base reward Value0 until
// height Drop0, then halving (with a one-time 5/8 kink) every Drop1
// blocks thereafter.
type Emission struct {
	Value0 txbase.Amount
	Drop0  txbase.Height
	Drop1  txbase.Height
}

// Maturity is the coinbase-vs-standard spendability delay, in blocks,
// added to an output's creation height.
type Maturity struct {
	Coinbase txbase.Height
	Std      txbase.Height
}

// DA holds the difficulty-adjustment parameters. This core never runs the
// adjustment algorithm itself (the PoW engine is pluggable, see pkg/pow),
// but every field here is still checksummed since a change to any of them
// would fork the chain.
type DA struct {
	Target_s      uint32
	MaxAhead_s    uint32
	WindowWork    uint32
	WindowMedian0 uint32
	WindowMedian1 uint32
	Difficulty0   uint32
	DampM         uint32
	DampN         uint32
}

// CA is the confidential-asset parameter block absorbed into the fork2
// checksum segment.
type CA struct {
	Enabled bool
	Deposit bool
}

// Shielded is the shielded-transaction parameter block absorbed into the
// fork2 checksum segment.
type Shielded struct {
	Enabled          bool
	NMax             uint32
	NMin             uint32
	MaxWindowBacklog uint32
}

// Rules is the full set of consensus parameters a validating node is
// configured with. Unlike the original's Rules::get() process-wide
// singleton, this core threads an explicit *Rules through every call site
// that needs it — see SPEC_FULL.md's ambient-stack notes on avoiding
// global mutable state.
type Rules struct {
	TreasuryChecksum ecc.Hash
	Prehistoric      ecc.Hash

	Emission Emission
	Maturity Maturity
	DA       DA
	CA       CA
	Shielded Shielded

	AllowPublicUtxos    bool
	FakePoW             bool
	MaxRollback         uint32
	MaxBodySize         uint32
	MaxKernelValidityDH txbase.Height

	pForks [numForks]HeightHash
}

// Default returns the mainnet-shaped parameter set this core ships with,
// matching the original's Rules constructor defaults (fork1 at height
// 321321, every later fork unscheduled at MaxHeight) generalized to an
// explicit value rather than a global.
func Default() *Rules {
	r := &Rules{
		Emission: Emission{
			Value0: 80 * Coin,
			Drop0:  1440 * 365,
			Drop1:  1440 * 365 * 4,
		},
		Maturity: Maturity{
			Coinbase: 240,
			Std:      0,
		},
		DA: DA{
			Target_s:      60,
			MaxAhead_s:    15 * 60,
			WindowWork:    120,
			WindowMedian0: 25,
			WindowMedian1: 7,
			Difficulty0:   22 << 24,
			DampM:         3,
			DampN:         4,
		},
		MaxRollback:         1440,
		MaxBodySize:         0x100000,
		MaxKernelValidityDH: 1440 * 30,
	}
	r.pForks[0].Height = txbase.HeightGenesis - 1
	r.pForks[1].Height = 321321
	for i := 2; i < numForks; i++ {
		r.pForks[i].Height = txbase.MaxHeight
	}
	return r
}

// IsForkHeightsConsistent reports whether the fork table is well-formed:
// pForks[0] pinned at HeightGenesis-1 and every later height non-decreasing
// — Rules::IsForkHeightsConsistent.
func (r *Rules) IsForkHeightsConsistent() bool {
	if r.pForks[0].Height != txbase.HeightGenesis-1 {
		return false
	}
	for i := 1; i < numForks; i++ {
		if r.pForks[i].Height < r.pForks[i-1].Height {
			return false
		}
	}
	return true
}

// Fork1Height and Fork2Height expose the two forks pkg/tx gates on.
func (r *Rules) Fork1Height() txbase.Height { return r.pForks[1].Height }
func (r *Rules) Fork2Height() txbase.Height { return r.pForks[2].Height }

// ForkHash returns fork i's checksum, as computed by the last
// UpdateChecksum call — used by pkg/block to bind a block header to the
// fork's parameter set once it activates.
func (r *Rules) ForkHash(i int) ecc.Hash { return r.pForks[i].Hash }

// ForkHeight returns fork i's activation height.
func (r *Rules) ForkHeight(i int) txbase.Height { return r.pForks[i].Height }

// SetFork1Height and SetFork2Height let callers (tests, alternate
// networks) override the activation heights before calling
// UpdateChecksum.
func (r *Rules) SetFork1Height(h txbase.Height) { r.pForks[1].Height = h }
func (r *Rules) SetFork2Height(h txbase.Height) { r.pForks[2].Height = h }

// UpdateChecksum derives every pForks[i].Hash from the current parameter
// values via one chain of domain-separated Oracle absorptions: a "genesis"
// segment covering the base parameters (emission, maturity, body size,
// PoW/public-UTXO flags, difficulty adjustment other than Damp, rollback),
// read out as pForks[0].Hash, then one further segment per fork absorbed
// into the same transcript, layering in that fork's newly-active
// parameters. Each fork's checksum therefore depends on every segment
// before it, while a parameter first absorbed in a later segment leaves
// the earlier checksums unchanged. Must be called before the rules are
// consulted by any validation; panics if the fork table is inconsistent,
// matching the original's throw.
func (r *Rules) UpdateChecksum() {
	if !r.IsForkHeightsConsistent() {
		panic("rules: inconsistent fork heights")
	}

	o := ecc.NewOracle()
	o.WriteHash(r.Prehistoric).
		WriteHash(r.TreasuryChecksum).
		WriteUint64(uint64(txbase.HeightGenesis)).
		WriteUint64(uint64(Coin)).
		WriteUint64(uint64(r.Emission.Value0)).
		WriteUint64(uint64(r.Emission.Drop0)).
		WriteUint64(uint64(r.Emission.Drop1)).
		WriteUint64(uint64(r.Maturity.Coinbase)).
		WriteUint64(uint64(r.Maturity.Std)).
		WriteUint32(r.MaxBodySize).
		WriteBool(r.FakePoW).
		WriteBool(r.AllowPublicUtxos).
		WriteUint32(r.DA.Target_s).
		WriteUint32(r.DA.MaxAhead_s).
		WriteUint32(r.DA.WindowWork).
		WriteUint32(r.DA.WindowMedian0).
		WriteUint32(r.DA.WindowMedian1).
		WriteUint32(r.DA.Difficulty0).
		WriteUint32(r.MaxRollback).
		WriteString("genesis")
	r.pForks[0].Hash = o.ReadHash()

	o.WriteString("fork1").
		WriteUint64(uint64(r.pForks[1].Height)).
		WriteUint32(r.DA.DampM).
		WriteUint32(r.DA.DampN)
	r.pForks[1].Hash = o.ReadHash()

	o.WriteString("fork2").
		WriteUint64(uint64(r.pForks[2].Height)).
		WriteUint64(uint64(r.MaxKernelValidityDH)).
		WriteBool(r.Shielded.Enabled).
		WriteUint32(r.Shielded.NMax).
		WriteUint32(r.Shielded.NMin).
		WriteUint32(r.Shielded.MaxWindowBacklog).
		WriteBool(r.CA.Enabled).
		WriteBool(r.CA.Deposit)
	r.pForks[2].Hash = o.ReadHash()
}

// FindForkByHash returns the index of the fork whose checksum equals hv,
// searching from the latest fork backward, and false if none match —
// Rules::FindFork(const Merkle::Hash&). A fork with an unscheduled
// (MaxHeight) activation height never matches, since it carries no
// meaningful checksum yet.
func (r *Rules) FindForkByHash(hv ecc.Hash) (int, bool) {
	for i := numForks - 1; i >= 0; i-- {
		if r.pForks[i].Height != txbase.MaxHeight && r.pForks[i].Hash == hv {
			return i, true
		}
	}
	return 0, false
}

// FindFork returns the index of the latest fork active at height h —
// Rules::FindFork(Height).
func (r *Rules) FindFork(h txbase.Height) int {
	for i := numForks - 1; i >= 0; i-- {
		if h >= r.pForks[i].Height {
			return i
		}
	}
	return 0
}

// LastFork returns the HeightHash of the highest-index fork whose height
// is scheduled (not MaxHeight), whether or not that height has been
// reached yet — Rules::get_LastFork.
func (r *Rules) LastFork() HeightHash {
	for i := numForks - 1; i >= 0; i-- {
		if r.pForks[i].Height != txbase.MaxHeight {
			return r.pForks[i]
		}
	}
	return r.pForks[0]
}

// EmissionEx returns the per-block reward active at height h, plus the
// height (exclusive) at which it next changes, folding in the documented
// 5/8 kink: at Drop0 the reward halves, then at n>=2 Drop1-cycles it's
// bumped by a quarter before the shift — Rules::get_EmissionEx.
func (r *Rules) EmissionEx(h txbase.Height, base txbase.Amount) (reward txbase.Amount, hEnd txbase.Height) {
	d := h - txbase.HeightGenesis // wraps harmlessly for h < HeightGenesis, yielding a huge d and zero reward below

	if d < r.Emission.Drop0 {
		return base, txbase.HeightGenesis + r.Emission.Drop0
	}

	if r.Emission.Drop1 == 0 {
		panic("rules: Emission.Drop1 must be nonzero")
	}
	n := 1 + (d-r.Emission.Drop0)/r.Emission.Drop1

	const nBitsMax = 64
	if uint64(n) >= nBitsMax {
		return 0, txbase.MaxHeight
	}

	hEnd = txbase.HeightGenesis + r.Emission.Drop0 + n*r.Emission.Drop1

	if n >= 2 {
		base += base >> 2
	}
	return base >> txbase.Height(n), hEnd
}

// Emission1 returns the per-block reward at height h under the default
// base reward — Rules::get_Emission(Height).
func (r *Rules) Emission1(h txbase.Height) txbase.Amount {
	reward, _ := r.EmissionEx(h, r.Emission.Value0)
	return reward
}

// EmissionRange sums the per-block reward across hr in 128-bit
// arithmetic, stepping through each constant-reward segment —
// Rules::get_Emission(AmountBig::Type&, const HeightRange&).
func (r *Rules) EmissionRange(hr txbase.HeightRange) txbase.AmountBig {
	var res txbase.AmountBig
	if hr.IsEmpty() {
		return res
	}

	hPos := hr.Min
	for {
		reward, hEnd := r.EmissionEx(hPos, r.Emission.Value0)
		if reward == 0 {
			break
		}
		if hEnd <= hPos {
			panic("rules: EmissionEx produced a non-advancing segment")
		}

		if hr.Max < hEnd {
			res = res.Add(txbase.AmountBigFromAmount(reward).MulUint64(uint64(hr.Max-hPos) + 1))
			break
		}

		res = res.Add(txbase.AmountBigFromAmount(reward).MulUint64(uint64(hEnd - hPos)))
		hPos = hEnd
	}
	return res
}

// SignatureString renders LastFork's index and its checksum, the checksum
// base58-encoded, as "fork-<index>:<base58>" — suitable for an operator-facing diagnostic log line identifying which
// chain/parameter set a node is running — Rules::get_SignatureStr,
// base58-encoded here the same way the teacher's pkg/crypto/secp256k1.go
// encodes a WIF private key.
func (r *Rules) SignatureString() string {
	last := r.LastFork()
	return fmt.Sprintf("fork-%d:%s", r.FindFork(last.Height), base58.Encode(last.Hash[:]))
}

// TxParams projects the subset of r that pkg/tx gates element and kernel
// validation on, bridging the two packages without pkg/tx importing
// pkg/rules (see pkg/tx/params.go).
func (r *Rules) TxParams() tx.Params {
	return tx.Params{
		Fork1Height:      r.Fork1Height(),
		Fork2Height:      r.Fork2Height(),
		AllowPublicUtxos: r.AllowPublicUtxos,
		MaturityCoinbase: r.Maturity.Coinbase,
		MaturityStd:      r.Maturity.Std,
		CAEnabled:        r.CA.Enabled,
		CADeposit:        r.CA.Deposit,
		ShieldedEnabled:  r.Shielded.Enabled,
	}
}
