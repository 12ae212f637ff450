package txbase

import (
	"math/bits"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
)

// Amount is a 64-bit value, denominated in the chain's smallest unit.
type Amount uint64

// AmountBig is a 128-bit wide amount, used for totals that can exceed a
// single 64-bit word (coinbase sums across a height range, emission
// totals). It is represented as two 64-bit words rather than a bignum
// dependency so its byte order can be pinned to match the curve library's
// scalar byte order (big-endian, see Bytes).
type AmountBig struct {
	Hi uint64
	Lo uint64
}

// AmountBigFromAmount widens a single Amount.
func AmountBigFromAmount(a Amount) AmountBig {
	return AmountBig{Lo: uint64(a)}
}

// Add returns x + y, wrapping silently on overflow past 128 bits (never
// expected to occur given realistic supply caps).
func (x AmountBig) Add(y AmountBig) AmountBig {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return AmountBig{Hi: hi, Lo: lo}
}

// AddAmount adds a plain Amount.
func (x AmountBig) AddAmount(a Amount) AmountBig {
	return x.Add(AmountBigFromAmount(a))
}

// MulUint64 returns x * n, matching the original's
// `uintBigFrom(nCurrent) * uintBigFrom(count)` emission accumulation.
// Implemented as a single 64x64->128 multiply of the low word, since n is
// always a block count, never itself 128-bit; a non-zero high word panics.
func (x AmountBig) MulUint64(n uint64) AmountBig {
	if x.Hi != 0 {
		// A wide value multiplied by a block count would overflow 128 bits
		// for any realistic supply; callers never hit this path.
		panic("txbase: AmountBig.MulUint64 overflow")
	}
	hi, lo := bits.Mul64(x.Lo, n)
	return AmountBig{Hi: hi, Lo: lo}
}

// IsZero reports whether the value is zero.
func (x AmountBig) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// twoPow64 is the scalar value 2^64, used to weight the high word when
// folding an AmountBig into a single curve point.
func twoPow64() ecc.Scalar {
	var b [32]byte
	b[23] = 1
	return ecc.ScalarFromBytes(b[:])
}

// AddTo adds x*hGen into acc, matching the original's
// AmountBig::AddTo(ECC::Point::Native&, const AmountBig::Type&, hGen)
// overload used to fold a 128-bit coinbase total into a single commitment
// term: acc += Lo*hGen + Hi*(2^64)*hGen.
func (x AmountBig) AddTo(acc ecc.Point, hGen ecc.Point) ecc.Point {
	if x.Lo != 0 {
		acc = acc.Add(hGen.Mul(ecc.ScalarFromUint64(x.Lo)))
	}
	if x.Hi != 0 {
		weight := ecc.ScalarFromUint64(x.Hi).Mul(twoPow64())
		acc = acc.Add(hGen.Mul(weight))
	}
	return acc
}

// Bytes returns the big-endian 16-byte encoding.
func (x AmountBig) Bytes() [16]byte {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(x.Hi >> (8 * i))
		b[15-i] = byte(x.Lo >> (8 * i))
	}
	return b
}
