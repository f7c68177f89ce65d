package crypto

import (
	"errors"
	"math/big"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/sigilaris/sigilaris-sub000/ids"
)

// secp256k1N is the order of the secp256k1 curve.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// secp256k1HalfN is half the curve order, used for the Low-S check.
var secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)

// KeyPair is a secp256k1 private/public key pair.
type KeyPair struct {
	Private *secp256k1.PrivateKey
	Public  *secp256k1.PublicKey
}

// GenerateKey produces a fresh secp256k1 key pair using a cryptographically
// secure RNG, satisfying d ∈ (0, N) by construction.
func GenerateKey() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: priv.PubKey()}, nil
}

// Sign produces a Low-S, deterministic (RFC 6979) ECDSA signature over a
// 32-byte digest. v is the recovery id plus 27, per the wire format in §6.
func Sign(digest []byte, kp *KeyPair) (Signature, error) {
	if len(digest) != ids.HashLength {
		return Signature{}, errors.New("crypto: digest must be 32 bytes")
	}
	if kp == nil || kp.Private == nil {
		return Signature{}, errors.New("crypto: nil key pair")
	}
	compact := ecdsa.SignCompact(kp.Private, digest, false)
	// decred's compact format is [recoveryByte, R(32), S(32)]; recoveryByte
	// is already 27+recid for an uncompressed key, matching v ∈ {27,28}.
	var sig Signature
	sig.V = compact[0]
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	return sig, nil
}

// recoverPublicKey recovers the 65-byte uncompressed public key
// (0x04 || X || Y) from a signature and digest, rejecting non-canonical r,
// s, or v and any s in the upper half of the curve order.
func recoverPublicKey(sig Signature, digest []byte) ([]byte, error) {
	if len(digest) != ids.HashLength {
		return nil, ErrInvalidDigestLength
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	compact := make([]byte, 65)
	compact[0] = sig.V
	copy(compact[1:33], sig.R[:])
	copy(compact[33:65], sig.S[:])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, ErrRecoveryFailed
	}
	return pub.SerializeUncompressed(), nil
}

// KeyIDFromPublicKey derives KeyId20 = last 20 bytes of Keccak256(pub64),
// where pub64 is the 64-byte (x || y) uncompressed public key with the
// leading 0x04 marker stripped.
func KeyIDFromPublicKey(pub64 []byte) ids.KeyID {
	h := Keccak256(pub64)
	return ids.BytesToKeyID(h[12:])
}
