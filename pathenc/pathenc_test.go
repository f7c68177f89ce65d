package pathenc

import (
	"bytes"
	"testing"
)

func TestTablePrefixInjectiveAndPrefixFree(t *testing.T) {
	cases := []struct {
		path Path
		name string
	}{
		{Path{"app", "group"}, "accounts"},
		{Path{"app", "token"}, "accounts"},
		{Path{"app"}, "group/accounts"},
		{Path{"app", "gro"}, "up/accounts"},
		{Path{"m1"}, "counter"},
		{Path{"m2"}, "counter"},
	}

	prefixes := make([][]byte, len(cases))
	for i, c := range cases {
		prefixes[i] = TablePrefix(c.path, c.name)
	}

	for i := range prefixes {
		for j := range prefixes {
			if i == j {
				continue
			}
			if bytes.Equal(prefixes[i], prefixes[j]) {
				t.Fatalf("case %d and %d collided", i, j)
			}
			if bytes.HasPrefix(prefixes[j], prefixes[i]) {
				t.Fatalf("case %d is a prefix of case %d", i, j)
			}
		}
	}
}

func TestPathRoundTrip(t *testing.T) {
	p := Path{"app", "v1", "sub"}
	enc := EncodePath(p)
	got, rest, err := DecodePath(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %v", rest)
	}
	if len(got) != len(p) {
		t.Fatalf("length mismatch: got %v want %v", got, p)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("segment %d: got %q want %q", i, got[i], p[i])
		}
	}
}

func TestEncodeSegmentSentinelNotForgeable(t *testing.T) {
	// A segment containing an embedded NUL must still round-trip, since the
	// sentinel is only meaningful at the position the length prefix points
	// to.
	s := "a\x00b"
	enc := EncodeSegment(s)
	got, rest, err := DecodeSegment(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rest) != 0 || got != s {
		t.Fatalf("got %q rest %v", got, rest)
	}
}
