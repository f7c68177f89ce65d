package crypto

import "github.com/sigilaris/sigilaris-sub000/ids"

// Zeroize overwrites buf with zeros in place. Callers release private key
// scratch buffers and transient big-integer temporaries through this
// function before returning them to a shared pool, per the
// crypto.zeroize.enabled runtime knob (§6).
func Zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// ConstantTimeEqual reports whether a and b hold the same bytes in time
// proportional to max(len(a), len(b)), regardless of where they first
// differ.
func ConstantTimeEqual(a, b []byte) bool {
	return ids.ConstantTimeEqual(a, b)
}

// Config holds the runtime knobs listed in §6. The zero value has both
// knobs disabled; DefaultConfig returns the documented defaults.
type Config struct {
	// CacheEnabled enables memoization of recovery results via
	// RecoveryCache. Disabling forces per-call recovery.
	CacheEnabled bool
	// ZeroizeEnabled controls whether secret scratch buffers are zeroized
	// on release.
	ZeroizeEnabled bool
}

// DefaultConfig returns the documented defaults: both knobs enabled.
func DefaultConfig() Config {
	return Config{CacheEnabled: true, ZeroizeEnabled: true}
}
