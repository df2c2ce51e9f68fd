// Package aead defines the streaming AEAD facade the CBS protocol is built
// on top of: init with a key, feed associated data, then either encrypt or
// decrypt the payload, then finalize to get/check the tag. The protocol
// treats the primitive as a black box (§1 of the specification); this
// package supplies one concrete, swappable implementation so the facade can
// actually be exercised and tested.
package aead

import "errors"

// ErrInvalidKeySize is returned when Init is given a key of the wrong length.
var ErrInvalidKeySize = errors.New("aead: invalid key size")

// ErrInvalidNonceSize is returned when a nonce shorter than the primitive's
// minimum is supplied.
var ErrInvalidNonceSize = errors.New("aead: invalid nonce size")

// ErrNotInitialized is returned when Assoc/Encrypt/Decrypt/Finalize is called
// before Init, or after Finalize without a new Init.
var ErrNotInitialized = errors.New("aead: not initialized")

// ErrTagMismatch is returned by Finalize (decrypt direction) when the
// received tag does not authenticate.
var ErrTagMismatch = errors.New("aead: tag mismatch")

// KeySize is the fixed symmetric key size the protocol uses for both LTK and
// STK (§3).
const KeySize = 16

// TagSize is the protocol-fixed authentication tag length (§4.4) for the
// default AESGCM primitive. Both sides of CBS must agree on this value; it
// is a constant, not negotiated. (The specification suggests 8 bytes as "a
// reasonable default"; the shipped primitive uses the full 16-byte AES-GCM
// tag rather than hand-rolling truncation — see AESGCM's doc comment.)
const TagSize = 16

// MinNonceSize is the minimum nonce length the facade accepts, matching the
// specification's "≥7-byte nonce" requirement.
const MinNonceSize = 7

// Direction selects whether a session will encrypt or decrypt.
type Direction int

const (
	// Encrypt means Init will be followed by Encrypt then Finalize to
	// produce a tag.
	Encrypt Direction = iota
	// Decrypt means Init will be followed by Decrypt then Finalize to
	// check a received tag.
	Decrypt
)

// Primitive is the streaming AEAD facade. A single Primitive value is used
// for one init/assoc/crypt/finalize cycle at a time; callers that need
// concurrent use must use distinct Primitive values (the core client never
// does, since it is single-threaded per §5).
type Primitive interface {
	// Init begins a new AEAD operation with the given key, nonce and
	// direction. The nonce must be at least MinNonceSize bytes.
	Init(key []byte, nonce []byte, dir Direction) error
	// Assoc feeds associated (authenticated, not encrypted) data. May be
	// called multiple times before the first Encrypt/Decrypt call.
	Assoc(data []byte) error
	// Encrypt feeds plaintext and appends to dst whatever ciphertext is
	// ready, returning the result; an implementation may append nothing
	// here and emit all ciphertext from Finalize instead. Valid only after
	// Init(..., Encrypt).
	Encrypt(dst, plaintext []byte) ([]byte, error)
	// Decrypt feeds ciphertext and appends to dst whatever plaintext is
	// ready, returning the result; an implementation may append nothing
	// here and emit all plaintext from Finalize instead. Valid only after
	// Init(..., Decrypt). The tag is not checked until Finalize.
	Decrypt(dst, ciphertext []byte) ([]byte, error)
	// Finalize completes the operation. In the Encrypt direction it
	// appends any ciphertext not yet emitted, then the computed tag, to
	// dst. In the Decrypt direction, tag is the received tag to check; on
	// success any plaintext not yet emitted is appended to dst, and a
	// mismatch returns ErrTagMismatch and the Primitive must be treated as
	// having produced no valid plaintext.
	Finalize(dst []byte, tag []byte) ([]byte, error)
}
