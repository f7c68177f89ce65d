package codec

import (
	"math/big"
	"testing"
)

func TestBigNatRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 0x80, 0x81, 0xFF, 0x77, 0x100, 1 << 20, 1 << 40}
	for _, c := range cases {
		n := big.NewInt(c)
		enc := EncodeBigNat(n)
		got, rest, err := DecodeBigNat(enc)
		if err != nil {
			t.Fatalf("decode(%d): %v", c, err)
		}
		if len(rest) != 0 {
			t.Fatalf("decode(%d): leftover bytes %v", c, rest)
		}
		if got.Cmp(n) != 0 {
			t.Fatalf("decode(%d): got %v", c, got)
		}
	}
}

func TestBigNatSingleByteForm(t *testing.T) {
	enc := EncodeBigNat(big.NewInt(0x80))
	if len(enc) != 1 || enc[0] != 0x80 {
		t.Fatalf("expected single byte 0x80, got %x", enc)
	}
	enc = EncodeBigNat(big.NewInt(0x81))
	if len(enc) == 1 {
		t.Fatalf("0x81 should not fit the single-byte form")
	}
}

func TestBigNatRejectsNonCanonical(t *testing.T) {
	// A short-form tag wrapping a single byte <= 0x80 is non-canonical.
	nonCanonical := []byte{0x81, 0x05}
	if _, _, err := DecodeBigNat(nonCanonical); err == nil {
		t.Fatal("expected non-canonical payload to be rejected")
	}
}

func TestBigNatDecodeTruncated(t *testing.T) {
	if _, _, err := DecodeBigNat([]byte{0x85, 0x01, 0x02}); err == nil {
		t.Fatal("expected truncated input to fail")
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, -2, 5, -5, 1 << 20, -(1 << 20)}
	for _, c := range cases {
		n := big.NewInt(c)
		enc := EncodeBigInt(n)
		got, rest, err := DecodeBigInt(enc)
		if err != nil {
			t.Fatalf("decode(%d): %v", c, err)
		}
		if len(rest) != 0 {
			t.Fatalf("decode(%d): leftover bytes", c)
		}
		if got.Cmp(n) != 0 {
			t.Fatalf("decode(%d): got %v", c, got)
		}
	}
}
