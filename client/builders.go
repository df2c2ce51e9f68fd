package client

import (
	"github.com/cansec/cbs-client/aead"
	"github.com/cansec/cbs-client/pdu"
)

// BuildRequest starts (or restarts) a handshake for gid (§4.3, §4.4). It
// fails with ErrHandshakeOngoing if a request is already outstanding and
// has not yet timed out; a timed-out handshake may be retried freely.
func (c *Context) BuildRequest(gid uint8) ([]byte, error) {
	idx := c.cfg.groupIndex(gid)
	if idx < 0 {
		return nil, ErrUnknownGroup
	}
	gs := &c.groups[idx]
	now, err := c.now()
	if err != nil {
		return nil, err
	}
	if gs.state(now, c.cfg.TimeoutReqToResMS) == StateHandshakePending {
		return nil, ErrHandshakeOngoing
	}

	var nonce [pdu.ReqNonceSize]byte
	if err := c.nonZeroRandom(nonce[:]); err != nil {
		return nil, err
	}

	buf, err := packHeader(c.cfg.HeaderType, pdu.Header{Type: pdu.PayloadREQ, Gid: gid, Sid: c.cfg.Sid})
	if err != nil {
		return nil, err
	}
	buf = pdu.REQBody{ReqNonce: nonce}.Encode(buf)

	gs.requestNonce = nonce
	gs.lastHandshakeEventInstant = now
	c.observer.OnHandshakeStarted(gid)
	return buf, nil
}

// BuildUnsecured builds a plaintext UAD frame (§4.4). Unlike the other
// builders it causes no state change and may target a gid the Context has
// no group configured for, matching the specification's allowance for
// bootstrap chatter before any session exists.
func (c *Context) BuildUnsecured(gid uint8, sdu []byte) ([]byte, error) {
	if sdu == nil {
		return nil, ErrNullSdu
	}
	if len(sdu) > 255 {
		return nil, ErrTooLongSdu
	}
	buf, err := packHeader(c.cfg.HeaderType, pdu.Header{Type: pdu.PayloadUAD, Gid: gid, Sid: c.cfg.Sid})
	if err != nil {
		return nil, err
	}
	buf, encErr := pdu.UADBody{Sdu: sdu}.Encode(buf)
	if encErr != nil {
		return nil, ErrTooLongSdu
	}
	return buf, nil
}

// BuildSecured builds an authenticated-encrypted SADFD frame for gid's
// current session (§4.4). The counter nonce is incremented before any
// encryption is attempted and that increment is never rolled back (§7):
// once bumped, the value is burned even if something below fails, so a
// nonce is never reused on a retry.
func (c *Context) BuildSecured(gid uint8, sdu []byte) ([]byte, error) {
	if sdu == nil {
		return nil, ErrNullSdu
	}
	if len(sdu) > 255 {
		return nil, ErrTooLongSdu
	}
	idx := c.cfg.groupIndex(gid)
	if idx < 0 {
		return nil, ErrUnknownGroup
	}
	gs := &c.groups[idx]
	now, err := c.now()
	if err != nil {
		return nil, err
	}
	switch gs.state(now, c.cfg.TimeoutReqToResMS) {
	case StateEstablished, StateOverlap:
	default:
		return nil, ErrSessionNotEstablished
	}

	gs.currentCtrNonce++
	ctr := gs.currentCtrNonce

	hdrBuf, err := packHeader(c.cfg.HeaderType, pdu.Header{Type: pdu.PayloadSADFD, Gid: gid, Sid: c.cfg.Sid})
	if err != nil {
		return nil, err
	}

	nonce := buildNonce(ctr, gid, c.cfg.Sid)
	prim := c.newPrimitive()
	if err := prim.Init(gs.currentStk.Bytes(), nonce[:], aead.Encrypt); err != nil {
		return nil, err
	}
	var ctrBytes [pdu.CtrNonceSize]byte
	pdu.PutCtrNonce(ctrBytes[:], ctr)
	if err := prim.Assoc(hdrBuf); err != nil {
		return nil, err
	}
	if err := prim.Assoc(ctrBytes[:]); err != nil {
		return nil, err
	}
	if err := prim.Assoc([]byte{byte(len(sdu))}); err != nil {
		return nil, err
	}
	sealed, err := prim.Encrypt(nil, sdu)
	if err != nil {
		return nil, err
	}
	sealed, err = prim.Finalize(sealed, nil)
	if err != nil {
		return nil, err
	}
	tagSize := primitiveTagSize(prim)
	if len(sealed) < tagSize {
		return nil, ErrSecWarnInvalidTag
	}
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	out, encErr := pdu.SADFDBody{
		CtrNonce:     ctr,
		PlaintextLen: uint8(len(sdu)),
		Ciphertext:   ciphertext,
		Tag:          tag,
	}.Encode(hdrBuf)
	if encErr != nil {
		return nil, ErrTooLongCiphertext
	}
	return out, nil
}
