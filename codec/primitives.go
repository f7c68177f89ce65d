package codec

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Codec is the per-type encode/decode pair every table key, table value, or
// transaction payload field is described by. Decode returns the decoded
// value and whatever input remained after it.
type Codec[T any] struct {
	Encode func(T) []byte
	Decode func([]byte) (T, []byte, error)
}

// Ordered marks a Codec as order-preserving: compare(x,y) must equal
// lexCompareBytes(encode(x), encode(y)). Only codecs used as range-query
// table keys need to satisfy this.
type Ordered[T any] struct {
	Codec[T]
	Compare func(a, b T) int
}

// FixedBytes returns a Codec for a fixed-width byte array of length n,
// represented here as a plain []byte that the caller guarantees is always
// exactly n bytes (Go lacks a clean fixed-length-slice generic, so table
// definitions that want true fixed width wrap this with their own [n]byte
// marshal/unmarshal).
func FixedBytes(n int) Codec[[]byte] {
	return Codec[[]byte]{
		Encode: func(v []byte) []byte {
			if len(v) != n {
				panic("codec: FixedBytes value has wrong length")
			}
			out := make([]byte, n)
			copy(out, v)
			return out
		},
		Decode: func(b []byte) ([]byte, []byte, error) {
			if len(b) < n {
				return nil, b, newDecodeFailure("FixedBytes", "short input", b)
			}
			out := make([]byte, n)
			copy(out, b[:n])
			return out, b[n:], nil
		},
	}
}

// Bytes is an order-preserving codec for a length-prefixed byte string:
// BigNat length then the raw bytes.
var Bytes = Ordered[[]byte]{
	Codec: Codec[[]byte]{
		Encode: func(v []byte) []byte {
			out := EncodeUint64(uint64(len(v)))
			return append(out, v...)
		},
		Decode: func(b []byte) ([]byte, []byte, error) {
			n, rest, err := DecodeBigNat(b)
			if err != nil {
				return nil, b, err
			}
			length := int(n.Int64())
			if len(rest) < length {
				return nil, b, newDecodeFailure("Bytes", "truncated payload", rest)
			}
			out := make([]byte, length)
			copy(out, rest[:length])
			return out, rest[length:], nil
		},
	},
	// The BigNat length prefix comes first, so shorter strings sort before
	// longer ones; equal-length strings then compare byte-wise.
	Compare: func(a, b []byte) int {
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
		return bytes.Compare(a, b)
	},
}

// String is a length-prefixed UTF-8 string codec. Decoding rejects input
// that is not valid UTF-8.
var String = Codec[string]{
	Encode: func(v string) []byte {
		b := []byte(v)
		out := EncodeUint64(uint64(len(b)))
		return append(out, b...)
	},
	Decode: func(b []byte) (string, []byte, error) {
		n, rest, err := DecodeBigNat(b)
		if err != nil {
			return "", b, err
		}
		length := int(n.Int64())
		if len(rest) < length {
			return "", b, newDecodeFailure("String", "truncated payload", rest)
		}
		raw := rest[:length]
		if !utf8.Valid(raw) {
			return "", b, newDecodeFailure("String", "invalid utf-8", raw)
		}
		return string(raw), rest[length:], nil
	},
}

// Bool encodes false as 0x00 and true as 0x01.
var Bool = Codec[bool]{
	Encode: func(v bool) []byte {
		if v {
			return []byte{0x01}
		}
		return []byte{0x00}
	},
	Decode: func(b []byte) (bool, []byte, error) {
		if len(b) == 0 {
			return false, b, newDecodeFailure("Bool", "empty input", b)
		}
		switch b[0] {
		case 0x00:
			return false, b[1:], nil
		case 0x01:
			return true, b[1:], nil
		default:
			return false, b, newDecodeFailure("Bool", "invalid bool tag", b)
		}
	},
}

// Uint64 is an order-preserving codec over BigNat.
var Uint64 = Ordered[uint64]{
	Codec: Codec[uint64]{
		Encode: func(v uint64) []byte { return EncodeUint64(v) },
		Decode: func(b []byte) (uint64, []byte, error) {
			n, rest, err := DecodeBigNat(b)
			if err != nil {
				return 0, b, err
			}
			if !n.IsUint64() {
				return 0, b, newDecodeFailure("Uint64", "value exceeds uint64", b)
			}
			return n.Uint64(), rest, nil
		},
	},
	// BigNat encodings of naturals sort like the values themselves: a
	// longer payload always gets a larger tag byte, so comparing decoded
	// values agrees with comparing the encoded bytes.
	Compare: func(a, b uint64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	},
}

// Option encodes an optional value as a List of zero or one elements,
// distinguishable from BigNat(0) by the caller's context (the field's
// static type), not by the bytes themselves.
func Option[T any](elem Codec[T]) Codec[*T] {
	return Codec[*T]{
		Encode: func(v *T) []byte {
			if v == nil {
				return EncodeUint64(0)
			}
			out := EncodeUint64(1)
			return append(out, elem.Encode(*v)...)
		},
		Decode: func(b []byte) (*T, []byte, error) {
			n, rest, err := DecodeBigNat(b)
			if err != nil {
				return nil, b, err
			}
			switch n.Uint64() {
			case 0:
				return nil, rest, nil
			case 1:
				v, rest2, err := elem.Decode(rest)
				if err != nil {
					return nil, b, err
				}
				return &v, rest2, nil
			default:
				return nil, b, newDecodeFailure("Option", "count must be 0 or 1", b)
			}
		},
	}
}

// List encodes a BigNat count followed by each element in order.
func List[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Encode: func(v []T) []byte {
			out := EncodeUint64(uint64(len(v)))
			for _, e := range v {
				out = append(out, elem.Encode(e)...)
			}
			return out
		},
		Decode: func(b []byte) ([]T, []byte, error) {
			n, rest, err := DecodeBigNat(b)
			if err != nil {
				return nil, b, err
			}
			count := n.Uint64()
			out := make([]T, 0, count)
			for i := uint64(0); i < count; i++ {
				var v T
				v, rest, err = elem.Decode(rest)
				if err != nil {
					return nil, b, err
				}
				out = append(out, v)
			}
			return out, rest, nil
		},
	}
}

// Set encodes each element, sorts the resulting byte strings
// lexicographically, then emits them as a List. This makes the wire form
// independent of insertion order.
func Set[T any](elem Codec[T]) Codec[[]T] {
	list := List[T](elem)
	return Codec[[]T]{
		Encode: func(v []T) []byte {
			encoded := make([][]byte, len(v))
			for i, e := range v {
				encoded[i] = elem.Encode(e)
			}
			sort.Slice(encoded, func(i, j int) bool {
				return bytes.Compare(encoded[i], encoded[j]) < 0
			})
			out := EncodeUint64(uint64(len(encoded)))
			for _, e := range encoded {
				out = append(out, e...)
			}
			return out
		},
		Decode: list.Decode,
	}
}

// Pair is a (K, V) tuple used by Map.
type Pair[K, V any] struct {
	Key K
	Val V
}

// Map encodes as a Set of (K, V) pairs: each pair is encoded by
// concatenating the key and value encodings, the resulting byte strings are
// sorted, then emitted as a List.
func Map[K, V any](key Codec[K], val Codec[V]) Codec[[]Pair[K, V]] {
	pair := Codec[Pair[K, V]]{
		Encode: func(p Pair[K, V]) []byte {
			return append(key.Encode(p.Key), val.Encode(p.Val)...)
		},
		Decode: func(b []byte) (Pair[K, V], []byte, error) {
			var p Pair[K, V]
			k, rest, err := key.Decode(b)
			if err != nil {
				return p, b, err
			}
			v, rest2, err := val.Decode(rest)
			if err != nil {
				return p, b, err
			}
			p.Key, p.Val = k, v
			return p, rest2, nil
		},
	}
	return Set[Pair[K, V]](pair)
}
