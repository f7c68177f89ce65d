package codec

import (
	"bytes"
	"sort"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "unicode: éè"} {
		enc := String.Encode(s)
		got, rest, err := String.Decode(enc)
		if err != nil {
			t.Fatalf("decode(%q): %v", s, err)
		}
		if len(rest) != 0 || got != s {
			t.Fatalf("decode(%q): got %q, rest %v", s, got, rest)
		}
	}
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	bad := append(EncodeUint64(2), 0xff, 0xfe)
	if _, _, err := String.Decode(bad); err == nil {
		t.Fatal("expected invalid utf-8 to be rejected")
	}
}

func TestBoolRoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		enc := Bool.Encode(b)
		got, rest, err := Bool.Decode(enc)
		if err != nil || len(rest) != 0 || got != b {
			t.Fatalf("bool round-trip failed for %v: got %v rest %v err %v", b, got, rest, err)
		}
	}
}

// TestScenarioA is the spec's Scenario A: a Map("a"->1, "b"->2) sorts by
// encoded-key lex order and round-trips.
func TestScenarioA(t *testing.T) {
	m := []Pair[string, uint64]{{Key: "b", Val: 2}, {Key: "a", Val: 1}}
	codec := Map(String, Uint64.Codec)
	enc := codec.Encode(m)

	got, rest, err := codec.Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %v", rest)
	}
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" {
		t.Fatalf("expected sorted [a,b], got %+v", got)
	}

	// Re-encoding a differently-ordered input with the same logical pairs
	// must produce byte-identical output.
	enc2 := codec.Encode([]Pair[string, uint64]{{Key: "a", Val: 1}, {Key: "b", Val: 2}})
	if !bytes.Equal(enc, enc2) {
		t.Fatal("Map encoding is not independent of insertion order")
	}
}

func TestSetSortsDeterministically(t *testing.T) {
	setCodec := Set(String)
	in := []string{"zeta", "alpha", "mid"}
	enc := setCodec.Encode(in)

	got, _, err := setCodec.Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := append([]string{}, in...)
	sort.Slice(want, func(i, j int) bool {
		return bytes.Compare(String.Encode(want[i]), String.Encode(want[j])) < 0
	})
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestOptionRoundTrip(t *testing.T) {
	opt := Option(Uint64.Codec)
	none := opt.Encode(nil)
	v := uint64(42)
	some := opt.Encode(&v)

	gotNone, _, err := opt.Decode(none)
	if err != nil || gotNone != nil {
		t.Fatalf("expected None, got %v err %v", gotNone, err)
	}
	gotSome, _, err := opt.Decode(some)
	if err != nil || gotSome == nil || *gotSome != v {
		t.Fatalf("expected Some(%d), got %v err %v", v, gotSome, err)
	}
}

func TestUint64RespectsOrderClaim(t *testing.T) {
	if !RespectsOrder(Uint64, uint64(1), uint64(2)) {
		t.Fatal("Uint64 codec should respect its own declared Compare")
	}
}
