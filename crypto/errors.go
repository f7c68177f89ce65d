package crypto

import "errors"

// Errors returned by signature validation and recovery. These map onto the
// SignatureFailure reasons surfaced by the module package's CoreFailure.
var (
	ErrInvalidDigestLength = errors.New("crypto: digest must be 32 bytes")
	ErrInvalidV            = errors.New("crypto: v must be 27 or 28")
	ErrInvalidR            = errors.New("crypto: r must be in (0, N)")
	ErrInvalidS            = errors.New("crypto: s must be in (0, N)")
	ErrHighS               = errors.New("crypto: s is not low-S (s > N/2)")
	ErrRecoveryFailed      = errors.New("crypto: public key recovery failed")
)
