package client

import (
	"github.com/cansec/cbs-client/aead"
	"github.com/cansec/cbs-client/pdu"
	"github.com/cansec/cbs-client/secret"
)

// maxNonZeroRandomAttempts bounds the retry loop in nonZeroRandom; a TRNG
// that produces an all-zero buffer this many times in a row is treated as
// broken rather than unlucky.
const maxNonZeroRandomAttempts = 8

// nonceSize is the length handed to aead.Primitive.Init for every CBS
// operation: ctrnonce(3B) ‖ gid(1B) ‖ sid(1B), zero-padded to satisfy
// aead.MinNonceSize (7). The facade pads further internally (to its actual
// construction's nonce width) per its own doc comment; this is the "right-
// padded to primitive nonce length" step the specification asks the
// implementation to perform itself.
const nonceSize = 7

// buildNonce constructs the AEAD nonce for a SADFD/SRN operation (§4.4):
// the counter nonce and the header's gid/sid, which is exactly the
// information both sides of a CBS exchange agree on without needing to
// carry it separately.
func buildNonce(ctrnonce uint32, gid, sid uint8) [nonceSize]byte {
	var n [nonceSize]byte
	pdu.PutCtrNonce(n[:pdu.CtrNonceSize], ctrnonce)
	n[pdu.CtrNonceSize] = gid
	n[pdu.CtrNonceSize+1] = sid
	return n
}

// packHeader allocates a correctly-sized buffer and packs h into it.
func packHeader(ht pdu.HeaderType, h pdu.Header) ([]byte, error) {
	n, err := pdu.HeaderLen(ht)
	if err != nil {
		return nil, mapPackErr(err)
	}
	buf := make([]byte, n)
	if _, err := pdu.Pack(ht, h, buf); err != nil {
		return nil, mapPackErr(err)
	}
	return buf, nil
}

// mapPackErr translates pdu-level errors into the client package's single
// enumerated Error type (§7), so callers never have to errors.Is against two
// different error domains.
func mapPackErr(err error) error {
	switch err {
	case pdu.ErrGidOverflow:
		return ErrGidTooLarge
	case pdu.ErrSidOverflow:
		return ErrSidTooLarge
	case pdu.ErrBufferTooShort:
		return ErrTooShortPduForHeader
	case pdu.ErrUnknownHeaderType:
		return ErrInvalidHeaderType
	case pdu.ErrInvalidPayloadType:
		return ErrInvalidPayloadType
	default:
		return err
	}
}

// primitiveTagSize asks prim for its actual tag length when it exposes one
// (as AESGCM does), falling back to the package-level default for a
// minimal Primitive implementation that doesn't.
func primitiveTagSize(prim aead.Primitive) int {
	if t, ok := prim.(interface{ TagSize() int }); ok {
		return t.TagSize()
	}
	return aead.TagSize
}

// nonZeroRandom fills buf from c.trng, retrying on an all-zero draw since a
// zero request_nonce means "no handshake outstanding" (§3) and must never
// be produced by chance.
func (c *Context) nonZeroRandom(buf []byte) error {
	for i := 0; i < maxNonZeroRandomAttempts; i++ {
		if err := c.trng.Read(buf); err != nil {
			return ErrCannotGenerateRandom
		}
		if !secret.IsZero(buf) {
			return nil
		}
	}
	return ErrCannotGenerateNonZeroRandom
}
