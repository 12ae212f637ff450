package signature

import (
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ECDSASign signs digest with sk using ordinary secp256k1 ECDSA, returning
// a DER-encoded signature. This is not part of the kernel signature
// scheme (that is the Schnorr construction in signature.go) and nothing in
// that scheme calls it; its only test is its own ECDSA sign/verify round
// trip.
func ECDSASign(sk [32]byte, digest [32]byte) []byte {
	priv := secp.PrivKeyFromBytes(sk[:])
	sig := ecdsa.Sign(priv, digest[:])
	return sig.Serialize()
}

// ECDSAVerify verifies a DER-encoded ECDSA signature produced by ECDSASign.
func ECDSAVerify(pub [33]byte, digest [32]byte, der []byte) bool {
	pk, err := secp.ParsePubKey(pub[:])
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return false
	}
	return sig.Verify(digest[:], pk)
}
