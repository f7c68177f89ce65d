package codec

import "math/big"

// EncodeBigInt encodes a signed integer by mapping n≥0 → 2n and n<0 →
// -2n-1 (so that -1 → 1, -2 → 3, …), then BigNat-encoding the result. This
// keeps the wire format natural-number-only while remaining invertible for
// any signed value.
func EncodeBigInt(n *big.Int) []byte {
	var mapped *big.Int
	if n.Sign() >= 0 {
		mapped = new(big.Int).Lsh(n, 1)
	} else {
		mapped = new(big.Int).Neg(n)
		mapped.Lsh(mapped, 1)
		mapped.Sub(mapped, big.NewInt(1))
	}
	return EncodeBigNat(mapped)
}

// DecodeBigInt inverts EncodeBigInt.
func DecodeBigInt(b []byte) (*big.Int, []byte, error) {
	mapped, rest, err := DecodeBigNat(b)
	if err != nil {
		return nil, b, err
	}
	if mapped.Bit(0) == 0 {
		return new(big.Int).Rsh(mapped, 1), rest, nil
	}
	n := new(big.Int).Add(mapped, big.NewInt(1))
	n.Rsh(n, 1)
	n.Neg(n)
	return n, rest, nil
}
