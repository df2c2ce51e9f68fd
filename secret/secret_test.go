package secret

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroAndIsZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	require.False(t, IsZero(b))
	Zero(b)
	require.True(t, IsZero(b))
	for _, v := range b {
		require.Zero(t, v)
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.False(t, Equal([]byte{1, 2, 3}, []byte{1, 2, 4}))
	require.False(t, Equal([]byte{1, 2}, []byte{1, 2, 3}))
}

func TestKey16Zeroize(t *testing.T) {
	var k Key16
	for i := range k {
		k[i] = byte(i + 1)
	}
	require.False(t, k.IsZero())
	k.Zeroize()
	require.True(t, k.IsZero())
}

func TestKey16NeverPrintsBytes(t *testing.T) {
	k := Key16{0xDE, 0xAD, 0xBE, 0xEF}
	s := fmt.Sprintf("%v", k)
	require.NotContains(t, s, "222")
	require.Contains(t, s, "redacted")
}
