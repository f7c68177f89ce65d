package merkletrie

import "github.com/sigilaris/sigilaris-sub000/crypto"

// encodeNode produces the deterministic byte serialization of a node that
// its hash is taken over. A shortNode encodes as its compact key and child
// followed by a tag byte; a fullNode encodes as its 17 children followed by
// a tag byte. This is intentionally a private, minimal format: it only
// needs to be deterministic and collision-resistant under Keccak-256, not
// interoperable with anything outside this package.
func encodeNode(n node) []byte {
	switch n := n.(type) {
	case *shortNode:
		keyEnc := lengthPrefixed(n.Key)
		var valEnc []byte
		if v, ok := n.Val.(valueNode); ok {
			valEnc = lengthPrefixed([]byte(v))
		} else {
			valEnc = lengthPrefixed(childRef(n.Val))
		}
		out := make([]byte, 0, len(keyEnc)+len(valEnc)+1)
		out = append(out, keyEnc...)
		out = append(out, valEnc...)
		out = append(out, 0x01) // shortNode tag
		return out
	case *fullNode:
		out := make([]byte, 0, 17*33+1)
		for i := 0; i < 17; i++ {
			child := n.Children[i]
			var ref []byte
			if v, ok := child.(valueNode); ok {
				ref = []byte(v)
			} else {
				ref = childRef(child)
			}
			out = append(out, lengthPrefixed(ref)...)
		}
		out = append(out, 0x02) // fullNode tag
		return out
	default:
		return nil
	}
}

// childRef returns the bytes standing in for a child node in its parent's
// encoding: the child's hash if it has one, or its own encoding inlined
// when small enough for the hasher to have left it unhashed.
func childRef(n node) []byte {
	switch n := n.(type) {
	case nil:
		return nil
	case hashNode:
		return []byte(n)
	default:
		return encodeNode(n)
	}
}

func lengthPrefixed(b []byte) []byte {
	out := make([]byte, 0, len(b)+5)
	out = appendUvarint(out, uint64(len(b)))
	return append(out, b...)
}

func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func keccak256(b []byte) []byte {
	return crypto.Keccak256(b)
}
