package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
)

// masterKeyVersion is this chain's own Base58Check version byte for an
// exported master-key seed, distinct from Bitcoin/Zcash's 0x80/0xef WIF
// versions so an exported seed can never be mistaken for a transparent
// private key from another chain.
const masterKeyVersion = 0x2a

// ExportMasterSeed encodes a 32-byte master-key seed (the input to
// NewMasterHKdf) as a Base58Check string, the same version-byte +
// double-SHA256-checksum envelope Bitcoin-style WIF uses for a private
// key, so an operator can back up or transcribe a master seed the same
// way a wallet would a paper-backup key.
func ExportMasterSeed(seed [32]byte) string {
	payload := make([]byte, 0, 1+32+4)
	payload = append(payload, masterKeyVersion)
	payload = append(payload, seed[:]...)

	checksum := doubleSHA256(payload)
	payload = append(payload, checksum[:4]...)
	return base58.Encode(payload)
}

// ImportMasterSeed decodes a string produced by ExportMasterSeed back into
// its 32-byte seed, verifying the version byte and checksum.
func ImportMasterSeed(encoded string) ([32]byte, error) {
	var seed [32]byte

	decoded := base58.Decode(encoded)
	if len(decoded) != 1+32+4 {
		return seed, fmt.Errorf("keys: invalid encoded seed length %d", len(decoded))
	}
	if decoded[0] != masterKeyVersion {
		return seed, fmt.Errorf("keys: unexpected version byte 0x%02x", decoded[0])
	}

	payload := decoded[:1+32]
	checksum := doubleSHA256(payload)
	if !bytesEqual(checksum[:4], decoded[1+32:]) {
		return seed, errors.New("keys: checksum mismatch")
	}

	copy(seed[:], decoded[1:1+32])
	return seed, nil
}

func doubleSHA256(b []byte) [32]byte {
	h1 := sha256.Sum256(b)
	return sha256.Sum256(h1[:])
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ExportChildKey encodes a derived child scalar (e.g. an owner's
// DeriveKey(id) output kept out-of-band by a wallet) the same way, using
// the raw scalar bytes rather than a master seed.
func ExportChildKey(sk ecc.Scalar) string {
	b := sk.Bytes()
	return ExportMasterSeed(b)
}

// ImportChildKey decodes a string produced by ExportChildKey back into its
// scalar.
func ImportChildKey(encoded string) (ecc.Scalar, error) {
	b, err := ImportMasterSeed(encoded)
	if err != nil {
		return ecc.Scalar{}, err
	}
	return ecc.ScalarFromBytes(b[:]), nil
}
