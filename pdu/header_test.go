package pdu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTripAllTypes(t *testing.T) {
	cases := []struct {
		ht  HeaderType
		h   Header
	}{
		{HeaderTypeNarrow, Header{Type: PayloadREQ, Gid: 3, Sid: 7}},
		{HeaderTypeNarrow, Header{Type: PayloadUAD, Gid: 0, Sid: 0}},
		{HeaderTypeStandard, Header{Type: PayloadSADFD, Gid: 31, Sid: 255}},
		{HeaderTypeStandard, Header{Type: PayloadRES, Gid: 0, Sid: 1}},
		{HeaderTypeWide, Header{Type: PayloadSRN, Gid: 255, Sid: 255}},
		{HeaderTypeWide, Header{Type: PayloadUAD, Gid: 0, Sid: 0}},
	}
	for _, c := range cases {
		n, err := HeaderLen(c.ht)
		require.NoError(t, err)
		buf := make([]byte, n)
		used, err := Pack(c.ht, c.h, buf)
		require.NoError(t, err)
		require.Equal(t, n, used)
		got, err := Unpack(c.ht, buf)
		require.NoError(t, err)
		require.Equal(t, c.h, got)
	}
}

func TestPackGidOverflow(t *testing.T) {
	_, err := Pack(HeaderTypeNarrow, Header{Gid: 4}, make([]byte, 1))
	require.ErrorIs(t, err, ErrGidOverflow)
}

func TestPackSidOverflow(t *testing.T) {
	_, err := Pack(HeaderTypeNarrow, Header{Sid: 8}, make([]byte, 1))
	require.ErrorIs(t, err, ErrSidOverflow)
}

func TestPackBufferTooShort(t *testing.T) {
	_, err := Pack(HeaderTypeStandard, Header{}, make([]byte, 1))
	require.ErrorIs(t, err, ErrBufferTooShort)
}

func TestUnpackBufferTooShort(t *testing.T) {
	_, err := Unpack(HeaderTypeWide, make([]byte, 2))
	require.ErrorIs(t, err, ErrBufferTooShort)
}

func TestUnknownHeaderType(t *testing.T) {
	_, err := HeaderLen(HeaderType(99))
	require.ErrorIs(t, err, ErrUnknownHeaderType)
	_, err = MaxGid(HeaderType(99))
	require.ErrorIs(t, err, ErrUnknownHeaderType)
	_, err = MaxSid(HeaderType(99))
	require.ErrorIs(t, err, ErrUnknownHeaderType)
}

func TestUnpackInvalidPayloadType(t *testing.T) {
	// narrow header, PTY bits = 7 (no such payload type)
	buf := []byte{0xFF}
	_, err := Unpack(HeaderTypeNarrow, buf)
	require.ErrorIs(t, err, ErrInvalidPayloadType)
}
