package aead

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seal(t *testing.T, key, nonce, assoc, plaintext []byte) []byte {
	t.Helper()
	p := NewAESGCM()
	require.NoError(t, p.Init(key, nonce, Encrypt))
	require.NoError(t, p.Assoc(assoc))
	dst, err := p.Encrypt(nil, plaintext)
	require.NoError(t, err)
	out, err := p.Finalize(dst, nil)
	require.NoError(t, err)
	return out
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := []byte{1, 2, 3, 4, 5, 0, 0}
	assoc := []byte{0xAA, 0xBB}
	plaintext := []byte("hello CAN-FD bus")

	sealed := seal(t, key, nonce, assoc, plaintext)
	ct := sealed[:len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	d := NewAESGCM()
	require.NoError(t, d.Init(key, nonce, Decrypt))
	require.NoError(t, d.Assoc(assoc))
	dst, err := d.Decrypt(nil, ct)
	require.NoError(t, err)
	plain, err := d.Finalize(dst, tag)
	require.NoError(t, err)
	require.Equal(t, plaintext, plain)
}

func TestAESGCMTagMismatch(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := []byte{1, 2, 3, 4, 5, 0, 0}
	sealed := seal(t, key, nonce, nil, []byte("data"))
	ct := sealed[:len(sealed)-TagSize]
	tag := append([]byte{}, sealed[len(sealed)-TagSize:]...)
	tag[0] ^= 0xFF

	d := NewAESGCM()
	require.NoError(t, d.Init(key, nonce, Decrypt))
	dst, err := d.Decrypt(nil, ct)
	require.NoError(t, err)
	_, err = d.Finalize(dst, tag)
	require.ErrorIs(t, err, ErrTagMismatch)
}

func TestAESGCMInvalidKeySize(t *testing.T) {
	p := NewAESGCM()
	err := p.Init(make([]byte, 10), make([]byte, MinNonceSize), Encrypt)
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestAESGCMInvalidNonceSize(t *testing.T) {
	p := NewAESGCM()
	err := p.Init(make([]byte, KeySize), make([]byte, 2), Encrypt)
	require.ErrorIs(t, err, ErrInvalidNonceSize)
}
