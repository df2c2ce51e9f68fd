// Package hosted provides heap-allocating, OS-backed convenience wrappers
// around the embedded-friendly client package: default Clock/TRNG
// providers, the binary and YAML configuration formats, and the ambient
// stats/readiness glue a long-running daemon needs. None of this is part
// of the core library's contract (§1 Non-goals: "configuration persistence
// ... heap-allocation conveniences"); it exists so cmd/cbsclientd has
// somewhere to get a real Context from.
package hosted

import (
	"crypto/rand"

	"golang.org/x/sys/unix"

	"github.com/cansec/cbs-client/timeutil"
)

// OSClock implements client.Clock against CLOCK_MONOTONIC, grounded on the
// teacher's fbclock/daemon.TimeMonotonicRaw (unix.ClockGettime wrapped in a
// small value type rather than a free function, to satisfy client.Clock).
type OSClock struct{}

// Now implements client.Clock.
func (OSClock) Now() (timeutil.Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	ms := ts.Sec*1000 + ts.Nsec/1_000_000
	return timeutil.Timestamp(uint32(ms)), nil
}

// OSTRNG implements client.TRNG against crypto/rand, the OS CSPRNG.
type OSTRNG struct{}

// Read implements client.TRNG.
func (OSTRNG) Read(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}
