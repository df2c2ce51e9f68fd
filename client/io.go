package client

import "github.com/cansec/cbs-client/timeutil"

// Clock is the injected time provider (§6 "IO"). Implementations must be
// non-blocking, or the caller accepts the stall — the core never schedules
// its own work and has no suspension points of its own (§5).
type Clock interface {
	// Now returns the current monotonic millisecond timestamp.
	Now() (timeutil.Timestamp, error)
}

// TRNG is the injected random-number provider (§6 "IO").
type TRNG interface {
	// Read fills buf with random bytes.
	Read(buf []byte) error
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() (timeutil.Timestamp, error)

// Now implements Clock.
func (f ClockFunc) Now() (timeutil.Timestamp, error) { return f() }

// TRNGFunc adapts a plain function to TRNG.
type TRNGFunc func(buf []byte) error

// Read implements TRNG.
func (f TRNGFunc) Read(buf []byte) error { return f(buf) }
