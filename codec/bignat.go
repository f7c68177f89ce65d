package codec

import "math/big"

// smallNatMax is the largest natural number that fits in the single-byte
// direct encoding: 0..0x80 inclusive (129 values). This is the deliberate
// deviation from RLP, whose single-byte form stops at 0x7f.
const smallNatMax = 0x80

// shortPayloadMax is the largest payload length (in bytes) that uses the
// short tag form 0x80+len.
const shortPayloadMax = 0x77

// EncodeBigNat encodes a non-negative integer per the framework's
// RLP-shaped but intentionally non-compatible natural-number scheme:
//
//	n ≤ 0x80            -> one byte, value n
//	len(payload) ≤ 0x77  -> 0x80+len(payload), then payload
//	otherwise            -> 0xF7+len(lenOf(payload)), then lenOf(payload), then payload
//
// where payload is the big-endian encoding of n with no leading zero byte.
func EncodeBigNat(n *big.Int) []byte {
	if n == nil || n.Sign() < 0 {
		panic("codec: EncodeBigNat requires a non-negative integer")
	}
	if n.Cmp(big.NewInt(smallNatMax)) <= 0 {
		return []byte{byte(n.Int64())}
	}
	payload := n.Bytes()
	if len(payload) <= shortPayloadMax {
		out := make([]byte, 1+len(payload))
		out[0] = 0x80 + byte(len(payload))
		copy(out[1:], payload)
		return out
	}
	lenBytes := minimalBigEndian(uint64(len(payload)))
	out := make([]byte, 1+len(lenBytes)+len(payload))
	out[0] = 0xF7 + byte(len(lenBytes))
	copy(out[1:], lenBytes)
	copy(out[1+len(lenBytes):], payload)
	return out
}

// EncodeUint64 is EncodeBigNat for a uint64, avoiding a big.Int allocation
// for the common case.
func EncodeUint64(u uint64) []byte {
	if u <= smallNatMax {
		return []byte{byte(u)}
	}
	payload := minimalBigEndian(u)
	out := make([]byte, 1+len(payload))
	out[0] = 0x80 + byte(len(payload))
	copy(out[1:], payload)
	return out
}

// DecodeBigNat reads a BigNat from the front of b, returning the decoded
// value and the unconsumed remainder.
func DecodeBigNat(b []byte) (*big.Int, []byte, error) {
	if len(b) == 0 {
		return nil, b, newDecodeFailure("BigNat", "empty input", b)
	}
	tag := b[0]
	switch {
	case tag <= smallNatMax:
		return big.NewInt(int64(tag)), b[1:], nil

	case tag <= 0x80+shortPayloadMax:
		payloadLen := int(tag - 0x80)
		if len(b) < 1+payloadLen {
			return nil, b, newDecodeFailure("BigNat", "truncated short payload", b)
		}
		payload := b[1 : 1+payloadLen]
		if err := checkCanonicalPayload(payload); err != nil {
			return nil, b, err
		}
		return new(big.Int).SetBytes(payload), b[1+payloadLen:], nil

	default:
		sizeOfLength := int(tag - 0xF7)
		if len(b) < 1+sizeOfLength {
			return nil, b, newDecodeFailure("BigNat", "truncated length field", b)
		}
		lengthBytes := b[1 : 1+sizeOfLength]
		if len(lengthBytes) > 0 && lengthBytes[0] == 0 {
			return nil, b, newDecodeFailure("BigNat", "non-canonical length prefix", b)
		}
		length := beToUint64(lengthBytes)
		if length <= shortPayloadMax {
			return nil, b, newDecodeFailure("BigNat", "non-canonical long-form tag", b)
		}
		start := 1 + sizeOfLength
		end := start + int(length)
		if uint64(len(b)) < uint64(end) {
			return nil, b, newDecodeFailure("BigNat", "truncated long payload", b)
		}
		payload := b[start:end]
		if err := checkCanonicalPayload(payload); err != nil {
			return nil, b, err
		}
		return new(big.Int).SetBytes(payload), b[end:], nil
	}
}

// checkCanonicalPayload rejects a payload that could have used a shorter
// encoding: a single byte ≤ 0x80 should have used the direct form, and a
// leading zero byte is never produced by big.Int.Bytes.
func checkCanonicalPayload(payload []byte) error {
	if len(payload) == 1 && payload[0] <= smallNatMax {
		return newDecodeFailure("BigNat", "non-canonical single-byte payload", payload)
	}
	if len(payload) > 0 && payload[0] == 0 {
		return newDecodeFailure("BigNat", "leading zero byte in payload", payload)
	}
	return nil
}

// minimalBigEndian returns the big-endian encoding of u with no leading
// zero bytes (a single 0x00 byte for u == 0, which callers here never pass).
func minimalBigEndian(u uint64) []byte {
	var buf [8]byte
	buf[0] = byte(u >> 56)
	buf[1] = byte(u >> 48)
	buf[2] = byte(u >> 40)
	buf[3] = byte(u >> 32)
	buf[4] = byte(u >> 24)
	buf[5] = byte(u >> 16)
	buf[6] = byte(u >> 8)
	buf[7] = byte(u)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	out := make([]byte, 8-i)
	copy(out, buf[i:])
	return out
}

func beToUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
