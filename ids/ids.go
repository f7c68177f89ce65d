// Package ids defines the small fixed-width identifiers shared across the
// framework: 32-byte hashes and 20-byte key identifiers. Every other package
// (crypto, merkletrie, store, module) builds on these two types instead of
// passing raw []byte around.
package ids

import "encoding/hex"

const (
	// HashLength is the width of a Keccak-256 digest.
	HashLength = 32
	// KeyIDLength is the width of an account key identifier (last 20 bytes
	// of Keccak256 of an uncompressed public key).
	KeyIDLength = 20
)

// Hash is a 32-byte Keccak-256 digest: a trie root, a signing digest, or a
// content hash.
type Hash [HashLength]byte

// KeyID is the 20-byte identifier derived from a public key: KeyId20 in the
// specification.
type KeyID [KeyIDLength]byte

// BytesToHash left-pads (or truncates from the left) b into a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// BytesToKeyID left-pads (or truncates from the left) b into a KeyID.
func BytesToKeyID(b []byte) KeyID {
	var k KeyID
	k.SetBytes(b)
	return k
}

// SetBytes sets the hash from b, left-padding if b is shorter than 32 bytes
// and keeping only the trailing 32 bytes if it is longer.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the raw digest bytes.
func (h Hash) Bytes() []byte { return h[:] }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// Hex renders the hash as a 0x-prefixed hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// SetBytes sets the key id from b, left-padding if b is shorter than 20
// bytes and keeping only the trailing 20 bytes if it is longer.
func (k *KeyID) SetBytes(b []byte) {
	if len(b) > KeyIDLength {
		b = b[len(b)-KeyIDLength:]
	}
	copy(k[KeyIDLength-len(b):], b)
}

// Bytes returns the raw key id bytes.
func (k KeyID) Bytes() []byte { return k[:] }

// IsZero reports whether k is the zero key id.
func (k KeyID) IsZero() bool { return k == KeyID{} }

// Hex renders the key id as a 0x-prefixed hex string.
func (k KeyID) Hex() string { return "0x" + hex.EncodeToString(k[:]) }

// String implements fmt.Stringer.
func (k KeyID) String() string { return k.Hex() }

// ConstantTimeEqual reports whether a and b hold the same bytes, running in
// time proportional to max(len(a), len(b)) regardless of where they first
// differ. Length mismatches short-circuit to false only after the
// comparison loop, so timing does not leak the common prefix length.
func ConstantTimeEqual(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var diff byte
	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		diff |= x ^ y
	}
	return diff == 0 && len(a) == len(b)
}
