// Package crypto is the CryptoOps collaborator: secp256k1 signing and
// public-key recovery, Keccak-256 hashing, and the fixed-width byte
// invariants (Low-S, canonical r/s/v) the framework's signature verification
// step depends on. The curve arithmetic itself is delegated to
// decred/dcrd's secp256k1 implementation; this package only enforces the
// wire-format contract described in the specification.
package crypto

import "math/big"

// Signature is the wire format of an ECDSA signature: v ∈ {27, 28}
// (recovery id + 27), r and s each fixed 32 bytes big-endian.
type Signature struct {
	V byte
	R [32]byte
	S [32]byte
}

// NewSignature builds a Signature from its big.Int components, left-padding
// r and s to 32 bytes.
func NewSignature(v byte, r, s *big.Int) Signature {
	var sig Signature
	sig.V = v
	putBigEndian(sig.R[:], r)
	putBigEndian(sig.S[:], s)
	return sig
}

func putBigEndian(dst []byte, v *big.Int) {
	b := v.Bytes()
	if len(b) > len(dst) {
		b = b[len(b)-len(dst):]
	}
	copy(dst[len(dst)-len(b):], b)
}

// RBigInt returns r as a big.Int.
func (s Signature) RBigInt() *big.Int { return new(big.Int).SetBytes(s.R[:]) }

// SBigInt returns s as a big.Int.
func (s Signature) SBigInt() *big.Int { return new(big.Int).SetBytes(s.S[:]) }

// Bytes encodes the signature as 65 bytes: R || S || V, the layout used by
// the EcRecover-style wire format.
func (s Signature) Bytes() []byte {
	buf := make([]byte, 65)
	copy(buf[:32], s.R[:])
	copy(buf[32:64], s.S[:])
	buf[64] = s.V
	return buf
}

// Validate checks r, s, v for the canonical form required before recovery:
// r and s must be in (0, N), v must be 27 or 28, and s must be Low-S
// (s ≤ N/2). A signature failing any of these checks is rejected outright;
// the framework never attempts recovery with a non-canonical signature.
func (s Signature) Validate() error {
	if s.V != 27 && s.V != 28 {
		return ErrInvalidV
	}
	r := s.RBigInt()
	if r.Sign() <= 0 || r.Cmp(secp256k1N) >= 0 {
		return ErrInvalidR
	}
	sv := s.SBigInt()
	if sv.Sign() <= 0 || sv.Cmp(secp256k1N) >= 0 {
		return ErrInvalidS
	}
	if sv.Cmp(secp256k1HalfN) > 0 {
		return ErrHighS
	}
	return nil
}

// NormalizeS rewrites a high-S signature to its Low-S equivalent (s' = N-s),
// flipping the recovery id so the same public key still recovers. Recover
// does not call it: a high-S signature passed to Recover is rejected with
// ErrHighS. A caller that chooses to accept high-S signatures normalizes
// them with NormalizeS before recovery.
func (s Signature) NormalizeS() Signature {
	sv := s.SBigInt()
	if sv.Cmp(secp256k1HalfN) <= 0 {
		return s
	}
	out := s
	out.V = 55 - s.V // flips 27<->28, the wire recovery byte's complement within {27,28}
	putBigEndian(out.S[:], new(big.Int).Sub(secp256k1N, sv))
	return out
}

// Recover validates r/s/v and recovers the 64-byte uncompressed public key
// (x || y, no 0x04 marker) from the digest. Rejects non-canonical r/s,
// high-S signatures, and recovery failures. The KeyId20 of the returned key
// is derived separately, by KeyIDFromPublicKey.
func Recover(digest []byte, sig Signature) ([]byte, error) {
	pub, err := recoverPublicKey(sig, digest)
	if err != nil {
		return nil, err
	}
	// pub is 0x04 || X(32) || Y(32); strip the uncompressed-point marker.
	return pub[1:], nil
}
