// Package pathenc implements the prefix-free encoding used to turn a
// module's mount path and a table name into the byte prefix that table's
// keys live under in the trie. Prefix-freeness is what lets two tables
// mounted at different paths share one flat key space without one table's
// keys ever being a prefix of another's.
package pathenc

import (
	"github.com/sigilaris/sigilaris-sub000/codec"
)

// segmentSentinel terminates every encoded segment. Prefix-freeness comes
// from the length prefix, not from the sentinel: two segments of different
// lengths already differ in their BigNat length prefix, and two of equal
// length have encodings of equal size. The sentinel is a marker that
// DecodeSegment checks at the position the length prefix points to.
const segmentSentinel = 0x00

// EncodeSegment encodes a single path segment (a module name or table name)
// as: BigNat(len(utf8 bytes)), the utf8 bytes themselves, then a 0x00
// sentinel.
func EncodeSegment(s string) []byte {
	raw := []byte(s)
	out := codec.EncodeUint64(uint64(len(raw)))
	out = append(out, raw...)
	out = append(out, segmentSentinel)
	return out
}

// DecodeSegment reads one encoded segment from the front of b.
func DecodeSegment(b []byte) (string, []byte, error) {
	n, rest, err := codec.DecodeBigNat(b)
	if err != nil {
		return "", b, err
	}
	length := int(n.Int64())
	if len(rest) < length+1 {
		return "", b, &PathFailure{Message: "truncated segment"}
	}
	raw := rest[:length]
	if rest[length] != segmentSentinel {
		return "", b, &PathFailure{Message: "missing segment sentinel"}
	}
	return string(raw), rest[length+1:], nil
}

// Path is a module mount path: a sequence of segments from the root of the
// composition down to the module that owns a table.
type Path []string

// EncodePath encodes a Path as BigNat(len(path)) followed by each segment
// in order.
func EncodePath(p Path) []byte {
	out := codec.EncodeUint64(uint64(len(p)))
	for _, seg := range p {
		out = append(out, EncodeSegment(seg)...)
	}
	return out
}

// DecodePath reads a Path from the front of b.
func DecodePath(b []byte) (Path, []byte, error) {
	n, rest, err := codec.DecodeBigNat(b)
	if err != nil {
		return nil, b, err
	}
	count := n.Uint64()
	path := make(Path, 0, count)
	for i := uint64(0); i < count; i++ {
		var seg string
		seg, rest, err = DecodeSegment(rest)
		if err != nil {
			return nil, b, err
		}
		path = append(path, seg)
	}
	return path, rest, nil
}

// TablePrefix returns the byte prefix every key of the table named `name`,
// owned by the module mounted at `path`, is stored under: EncodePath(path)
// followed by EncodeSegment(name).
//
// Because EncodePath is itself a BigNat count followed by sentinel-
// terminated segments, and EncodeSegment never produces a string that is a
// prefix of another EncodeSegment output, TablePrefix(p1, n1) is never a
// prefix of TablePrefix(p2, n2) unless p1 == p2 and n1 == n2 exactly. This
// is the prefix-freeness property schema evidence relies on.
func TablePrefix(path Path, name string) []byte {
	out := EncodePath(path)
	out = append(out, EncodeSegment(name)...)
	return out
}

// PathFailure reports a malformed path or segment encoding.
type PathFailure struct {
	Message string
}

func (e *PathFailure) Error() string { return "pathenc: " + e.Message }
