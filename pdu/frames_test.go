package pdu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCtrNonceRoundTrip(t *testing.T) {
	buf := make([]byte, CtrNonceSize)
	PutCtrNonce(buf, 0x123456)
	require.EqualValues(t, 0x123456, GetCtrNonce(buf))
}

func TestCtrNonceExpiredSentinel(t *testing.T) {
	buf := make([]byte, CtrNonceSize)
	PutCtrNonce(buf, CtrNonceExpired)
	require.EqualValues(t, MaxCtrNonce, GetCtrNonce(buf))
}

func TestREQBodyRoundTrip(t *testing.T) {
	b := REQBody{ReqNonce: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}}
	enc := b.Encode(nil)
	require.Len(t, enc, ReqNonceSize)
	got, err := DecodeREQBody(enc)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestREQBodyTooShort(t *testing.T) {
	_, err := DecodeREQBody(make([]byte, 3))
	require.ErrorIs(t, err, ErrTooShortForREQ)
}

func TestRESBodyRoundTrip(t *testing.T) {
	b := RESBody{
		ReqNonce: [8]byte{9, 9, 9, 9, 9, 9, 9, 9},
		CtrNonce: 42,
		EncSTK:   make([]byte, StkSize),
		Tag:      make([]byte, 16),
	}
	enc := b.Encode(nil)
	got, err := DecodeRESBody(enc, 16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestRESBodyTooShort(t *testing.T) {
	_, err := DecodeRESBody(make([]byte, 5), 16)
	require.ErrorIs(t, err, ErrTooShortForRES)
}

func TestUADBodyRoundTrip(t *testing.T) {
	b := UADBody{Sdu: []byte{0xDE, 0xAD}}
	enc, err := b.Encode(nil)
	require.NoError(t, err)
	got, err := DecodeUADBody(enc)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestUADBodyTooLong(t *testing.T) {
	b := UADBody{Sdu: make([]byte, 256)}
	_, err := b.Encode(nil)
	require.ErrorIs(t, err, ErrTooLongSdu)
}

func TestSRNBodyRoundTrip(t *testing.T) {
	b := SRNBody{CtrNonce: 7, Tag: make([]byte, 16)}
	enc := b.Encode(nil)
	got, err := DecodeSRNBody(enc, 16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestSADFDBodyRoundTrip(t *testing.T) {
	b := SADFDBody{
		CtrNonce:     99,
		PlaintextLen: 2,
		Ciphertext:   []byte{0x01, 0x02},
		Tag:          make([]byte, 16),
	}
	enc, err := b.Encode(nil)
	require.NoError(t, err)
	got, err := DecodeSADFDBody(enc, 16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestSADFDBodyTooShort(t *testing.T) {
	_, err := DecodeSADFDBody(make([]byte, 2), 16)
	require.ErrorIs(t, err, ErrTooShortForSADFD)
}
