package ctrdelay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cansec/cbs-client/timeutil"
)

func TestWindowNoSilence(t *testing.T) {
	got := Window(0, 0, 100, 1000)
	require.EqualValues(t, 100, got)
}

func TestWindowFullSilence(t *testing.T) {
	got := Window(0, 1000, 100, 1000)
	require.EqualValues(t, 0, got)
}

func TestWindowPastSilence(t *testing.T) {
	got := Window(0, 5000, 100, 1000)
	require.EqualValues(t, 0, got)
}

func TestWindowHalfSilence(t *testing.T) {
	got := Window(0, 500, 100, 1000)
	require.EqualValues(t, 50, got)
}

func TestWindowDisabled(t *testing.T) {
	got := Window(0, 12345, 100, 0)
	require.EqualValues(t, 0, got)
}

func TestWindowCeiling(t *testing.T) {
	// elapsed=1, maxSilence=3 -> fraction = 1/3, remaining=2/3
	// maxDelay=10 -> 10*2/3 = 6.67 -> ceil = 7
	got := Window(0, 1, 10, 3)
	require.EqualValues(t, 7, got)
}

func TestWindowMonotonicNonIncreasing(t *testing.T) {
	prev := Window(0, 0, 500, 1000)
	for elapsed := timeutil.Timestamp(0); elapsed <= 1000; elapsed += 37 {
		got := Window(0, elapsed, 500, 1000)
		require.LessOrEqual(t, got, prev)
		prev = got
	}
}
