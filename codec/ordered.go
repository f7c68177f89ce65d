package codec

import "bytes"

// LexCompare compares two byte strings lexicographically, the reference
// ordering every Ordered codec's Compare must agree with.
func LexCompare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// RespectsOrder reports whether o.Compare(x, y) agrees in sign with
// LexCompare(o.Encode(x), o.Encode(y)) for the given pair. Table
// implementations that need range queries over a key type use this (in
// tests, or defensively at table-construction time) to confirm a codec
// supplied as an Ordered[K] actually preserves the order it claims to.
func RespectsOrder[T any](o Ordered[T], x, y T) bool {
	want := sign(o.Compare(x, y))
	got := sign(LexCompare(o.Encode(x), o.Encode(y)))
	return want == got
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
