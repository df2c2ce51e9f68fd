// Package timeutil provides the monotonic millisecond clock arithmetic shared
// by the freshness window and handshake timeout logic. All timestamps are
// unsigned 32-bit milliseconds and wrap at 2^32; every delta below tolerates
// at most one wrap, matching the wire format's own modular arithmetic.
package timeutil

// Timestamp is a monotonic millisecond counter, wrapping at 2^32.
type Timestamp uint32

// Delta returns the elapsed time from "from" to "to" in modular 2^32
// arithmetic, interpreted as a non-negative duration. It tolerates a single
// wraparound: if "to" appears to precede "from", it is assumed to have
// wrapped exactly once.
func Delta(from, to Timestamp) uint32 {
	return uint32(to - from)
}

// Before reports whether a, measured as an elapsed delta from some common
// reference, occurred strictly before b. It is only meaningful for
// timestamps known to be within one wrap of each other.
func Before(a, b Timestamp) bool {
	return int32(a-b) < 0
}
