// Package secret holds the handling rules for key material and nonces: opaque
// zeroization and constant-time comparison. Nothing here is clever crypto;
// it exists so the core state machine never has to reason about compiler
// optimizations eliding a clear operation on a secret buffer.
package secret

import (
	"crypto/subtle"
	"fmt"
)

// Zero overwrites b with zeros in a way the compiler cannot optimize away,
// because the call crosses a function boundary the compiler can't see into
// (crypto/subtle's ConstantTimeCopy touches every byte, forcing the write to
// happen).
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// IsZero reports whether b consists entirely of zero bytes, in constant time
// with respect to the position of the first non-zero byte.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

// Equal reports whether a and b are equal, in time independent of where they
// first differ. Used for comparing AEAD tags and other secret-derived values.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Key16 is a 16-byte symmetric key (LTK or STK). Its Format method makes
// every fmt verb print a redacted placeholder instead of its bytes; callers
// must explicitly ask for the raw slice via Bytes.
type Key16 [16]byte

// Bytes returns the underlying key material.
func (k *Key16) Bytes() []byte {
	return k[:]
}

// IsZero reports whether the key is all-zero, the sentinel for "no session"
// or "no key configured".
func (k *Key16) IsZero() bool {
	return IsZero(k[:])
}

// Zeroize overwrites the key with zeros.
func (k *Key16) Zeroize() {
	Zero(k[:])
}

// Format implements fmt.Formatter to guarantee that even %v/%+v/%#v never
// leak key bytes, regardless of verb.
func (k Key16) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte("Key16(redacted)"))
}
