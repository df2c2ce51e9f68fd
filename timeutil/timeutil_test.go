package timeutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaSimple(t *testing.T) {
	require.EqualValues(t, 50, Delta(100, 150))
	require.EqualValues(t, 0, Delta(100, 100))
}

func TestDeltaWrap(t *testing.T) {
	from := Timestamp(math.MaxUint32 - 10)
	to := Timestamp(10)
	require.EqualValues(t, 21, Delta(from, to))
}

func TestBefore(t *testing.T) {
	require.True(t, Before(10, 20))
	require.False(t, Before(20, 10))
	require.False(t, Before(10, 10))
}
