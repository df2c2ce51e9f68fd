package pdu

import "fmt"

// ReqNonceSize is the width of the random nonce carried in a REQ (§6).
const ReqNonceSize = 8

// CtrNonceSize is the width of the wire-encoded counter nonce (24 bits, 3
// bytes, little-endian).
const CtrNonceSize = 3

// StkSize is the width of an encrypted STK as carried in a RES.
const StkSize = 16

// CtrNonceExpired is the terminal sentinel value for a 24-bit counter nonce
// (§3).
const CtrNonceExpired uint32 = 0xFFFFFF

// MaxCtrNonce is the largest representable 24-bit counter value.
const MaxCtrNonce uint32 = 0xFFFFFF

var (
	// ErrTooShortForREQ etc. are the framing errors named in §7.
	ErrTooShortForREQ   = fmt.Errorf("pdu: buffer too short for REQ body")
	ErrTooShortForRES   = fmt.Errorf("pdu: buffer too short for RES body")
	ErrTooShortForSRN   = fmt.Errorf("pdu: buffer too short for SRN body")
	ErrTooShortForSADFD = fmt.Errorf("pdu: buffer too short for SADFD body")
	ErrTooShortForUAD   = fmt.Errorf("pdu: buffer too short for UAD body")
	ErrTooLongSdu       = fmt.Errorf("pdu: sdu exceeds 255 bytes")
	ErrTooLongCiphertext = fmt.Errorf("pdu: ciphertext exceeds 255 bytes")
)

// PutCtrNonce writes a 24-bit counter nonce, little-endian, into buf[:3].
func PutCtrNonce(buf []byte, v uint32) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
}

// GetCtrNonce reads a 24-bit little-endian counter nonce from buf[:3].
func GetCtrNonce(buf []byte) uint32 {
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16
}

// REQBody is the payload of a REQ frame: header ‖ reqnonce(8B).
type REQBody struct {
	ReqNonce [ReqNonceSize]byte
}

// Encode appends the REQ body to dst.
func (b REQBody) Encode(dst []byte) []byte {
	return append(dst, b.ReqNonce[:]...)
}

// DecodeREQBody parses a REQ body from buf.
func DecodeREQBody(buf []byte) (REQBody, error) {
	if len(buf) < ReqNonceSize {
		return REQBody{}, ErrTooShortForREQ
	}
	var b REQBody
	copy(b.ReqNonce[:], buf[:ReqNonceSize])
	return b, nil
}

// RESBody is the payload of a RES frame: header ‖ reqnonce(8B) ‖
// ctrnonce(3B) ‖ stk(16B, encrypted) ‖ tag. EncSTK holds the ciphertext of
// the new STK and Tag the AEAD tag authenticating (ReqNonce ‖ CtrNonce ‖
// EncSTK) under the LTK; the core client is responsible for running them
// through the aead.Primitive.
type RESBody struct {
	ReqNonce [ReqNonceSize]byte
	CtrNonce uint32 // only the low 24 bits are meaningful
	EncSTK   []byte // len == StkSize
	Tag      []byte
}

// Encode appends the RES body to dst.
func (b RESBody) Encode(dst []byte) []byte {
	dst = append(dst, b.ReqNonce[:]...)
	var ctr [CtrNonceSize]byte
	PutCtrNonce(ctr[:], b.CtrNonce)
	dst = append(dst, ctr[:]...)
	dst = append(dst, b.EncSTK...)
	dst = append(dst, b.Tag...)
	return dst
}

// DecodeRESBody parses a RES body from buf, given the expected tag size
// (from the negotiated aead.Primitive).
func DecodeRESBody(buf []byte, tagSize int) (RESBody, error) {
	fixed := ReqNonceSize + CtrNonceSize + StkSize
	if len(buf) < fixed+tagSize {
		return RESBody{}, ErrTooShortForRES
	}
	var b RESBody
	copy(b.ReqNonce[:], buf[:ReqNonceSize])
	off := ReqNonceSize
	b.CtrNonce = GetCtrNonce(buf[off : off+CtrNonceSize])
	off += CtrNonceSize
	b.EncSTK = append([]byte{}, buf[off:off+StkSize]...)
	off += StkSize
	b.Tag = append([]byte{}, buf[off:off+tagSize]...)
	return b, nil
}

// UADBody is the payload of a UAD frame: header ‖ sdu_len(1B) ‖ sdu.
type UADBody struct {
	Sdu []byte
}

// Encode appends the UAD body to dst.
func (b UADBody) Encode(dst []byte) ([]byte, error) {
	if len(b.Sdu) > 255 {
		return dst, ErrTooLongSdu
	}
	dst = append(dst, byte(len(b.Sdu)))
	dst = append(dst, b.Sdu...)
	return dst, nil
}

// DecodeUADBody parses a UAD body from buf.
func DecodeUADBody(buf []byte) (UADBody, error) {
	if len(buf) < 1 {
		return UADBody{}, ErrTooShortForUAD
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return UADBody{}, ErrTooShortForUAD
	}
	return UADBody{Sdu: append([]byte{}, buf[1:1+n]...)}, nil
}

// SRNBody is the payload of a SRN frame: header ‖ ctrnonce(3B) ‖ tag.
type SRNBody struct {
	CtrNonce uint32
	Tag      []byte
}

// Encode appends the SRN body to dst.
func (b SRNBody) Encode(dst []byte) []byte {
	var ctr [CtrNonceSize]byte
	PutCtrNonce(ctr[:], b.CtrNonce)
	dst = append(dst, ctr[:]...)
	dst = append(dst, b.Tag...)
	return dst
}

// DecodeSRNBody parses a SRN body from buf given the negotiated tag size.
func DecodeSRNBody(buf []byte, tagSize int) (SRNBody, error) {
	if len(buf) < CtrNonceSize+tagSize {
		return SRNBody{}, ErrTooShortForSRN
	}
	var b SRNBody
	b.CtrNonce = GetCtrNonce(buf[:CtrNonceSize])
	b.Tag = append([]byte{}, buf[CtrNonceSize:CtrNonceSize+tagSize]...)
	return b, nil
}

// SADFDBody is the payload of a SADFD frame: header ‖ ctrnonce(3B) ‖
// plaintext_len(1B) ‖ ciphertext ‖ tag.
type SADFDBody struct {
	CtrNonce     uint32
	PlaintextLen uint8
	Ciphertext   []byte
	Tag          []byte
}

// Encode appends the SADFD body to dst.
func (b SADFDBody) Encode(dst []byte) ([]byte, error) {
	if len(b.Ciphertext) > 255 {
		return dst, ErrTooLongCiphertext
	}
	var ctr [CtrNonceSize]byte
	PutCtrNonce(ctr[:], b.CtrNonce)
	dst = append(dst, ctr[:]...)
	dst = append(dst, b.PlaintextLen)
	dst = append(dst, b.Ciphertext...)
	dst = append(dst, b.Tag...)
	return dst, nil
}

// DecodeSADFDBody parses a SADFD body from buf given the negotiated tag
// size. The ciphertext length is inferred from the remaining buffer length
// once the fixed fields and the trailing tag are accounted for (ciphertext
// length equals plaintext length for the stream-cipher-style AEAD modes this
// protocol targets).
func DecodeSADFDBody(buf []byte, tagSize int) (SADFDBody, error) {
	fixed := CtrNonceSize + 1
	if len(buf) < fixed+tagSize {
		return SADFDBody{}, ErrTooShortForSADFD
	}
	var b SADFDBody
	b.CtrNonce = GetCtrNonce(buf[:CtrNonceSize])
	b.PlaintextLen = buf[CtrNonceSize]
	ctLen := len(buf) - fixed - tagSize
	off := fixed
	b.Ciphertext = append([]byte{}, buf[off:off+ctLen]...)
	off += ctLen
	b.Tag = append([]byte{}, buf[off:off+tagSize]...)
	return b, nil
}
