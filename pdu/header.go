// Package pdu implements the CBS wire format: the bit-packed header and the
// five payload-type frames (REQ, RES, UAD, SRN, SADFD) built on top of it.
// All multi-byte integers are little-endian, with no padding, per §6.
package pdu

import "fmt"

// PayloadType is the PTY field of a CBS header.
type PayloadType uint8

// Recognized payload types (§4.1).
const (
	PayloadUAD PayloadType = iota
	PayloadREQ
	PayloadRES
	PayloadSRN
	PayloadSADFD
)

func (p PayloadType) String() string {
	switch p {
	case PayloadUAD:
		return "UAD"
	case PayloadREQ:
		return "REQ"
	case PayloadRES:
		return "RES"
	case PayloadSRN:
		return "SRN"
	case PayloadSADFD:
		return "SADFD"
	default:
		return fmt.Sprintf("PayloadType(%d)", uint8(p))
	}
}

// HeaderType selects the bit layout used to pack {PTY, GID, SID} into the
// first bytes of a frame. The exact layouts are an open question in the
// specification ("the implementer must match the Server's configuration
// tables exactly"); three layouts covering narrow, standard and wide
// deployments are defined here.
type HeaderType uint8

const (
	// HeaderTypeNarrow packs PTY(3)|GID(2)|SID(3) into a single byte.
	// Suitable for small deployments: up to 4 groups, 8 clients.
	HeaderTypeNarrow HeaderType = iota
	// HeaderTypeStandard packs PTY(3)|GID(5) into byte 0 and SID(8) into
	// byte 1. Up to 32 groups, 256 clients.
	HeaderTypeStandard
	// HeaderTypeWide packs PTY(4, low nibble of byte 0, high nibble
	// reserved) into byte 0, GID(8) into byte 1 and SID(8) into byte 2.
	// Up to 256 groups, 256 clients.
	HeaderTypeWide
)

// ErrUnknownHeaderType is returned for a HeaderType value outside the
// recognized set.
var ErrUnknownHeaderType = fmt.Errorf("pdu: unknown header type")

// ErrGidOverflow is returned when a GID does not fit in the given
// HeaderType's field width.
var ErrGidOverflow = fmt.Errorf("pdu: gid too large for header type")

// ErrSidOverflow is returned when a SID does not fit in the given
// HeaderType's field width.
var ErrSidOverflow = fmt.Errorf("pdu: sid too large for header type")

// ErrBufferTooShort is returned by Pack/Unpack when the supplied buffer
// cannot hold (or does not contain) a full header.
var ErrBufferTooShort = fmt.Errorf("pdu: buffer too short for header")

// ErrInvalidPayloadType is returned when Unpack decodes a PTY value with no
// corresponding PayloadType.
var ErrInvalidPayloadType = fmt.Errorf("pdu: invalid payload type")

// MaxGid returns the largest GID representable in the given HeaderType.
func MaxGid(ht HeaderType) (uint16, error) {
	switch ht {
	case HeaderTypeNarrow:
		return 3, nil
	case HeaderTypeStandard:
		return 31, nil
	case HeaderTypeWide:
		return 255, nil
	default:
		return 0, ErrUnknownHeaderType
	}
}

// MaxSid returns the largest SID representable in the given HeaderType.
func MaxSid(ht HeaderType) (uint16, error) {
	switch ht {
	case HeaderTypeNarrow:
		return 7, nil
	case HeaderTypeStandard:
		return 255, nil
	case HeaderTypeWide:
		return 255, nil
	default:
		return 0, ErrUnknownHeaderType
	}
}

// HeaderLen returns the wire length in bytes of a header of the given type.
func HeaderLen(ht HeaderType) (int, error) {
	switch ht {
	case HeaderTypeNarrow:
		return 1, nil
	case HeaderTypeStandard:
		return 2, nil
	case HeaderTypeWide:
		return 3, nil
	default:
		return 0, ErrUnknownHeaderType
	}
}

// Header is the decoded {PTY, GID, SID} triple common to every CBS frame.
type Header struct {
	Type PayloadType
	Gid  uint8
	Sid  uint8
}

// Pack encodes h into buf according to ht, returning the number of bytes
// written. buf must be at least HeaderLen(ht) bytes.
func Pack(ht HeaderType, h Header, buf []byte) (int, error) {
	n, err := HeaderLen(ht)
	if err != nil {
		return 0, err
	}
	if len(buf) < n {
		return 0, ErrBufferTooShort
	}
	maxGid, err := MaxGid(ht)
	if err != nil {
		return 0, err
	}
	maxSid, err := MaxSid(ht)
	if err != nil {
		return 0, err
	}
	if uint16(h.Gid) > maxGid {
		return 0, ErrGidOverflow
	}
	if uint16(h.Sid) > maxSid {
		return 0, ErrSidOverflow
	}
	switch ht {
	case HeaderTypeNarrow:
		buf[0] = uint8(h.Type)<<5 | h.Gid<<3 | h.Sid
	case HeaderTypeStandard:
		buf[0] = uint8(h.Type)<<5 | h.Gid
		buf[1] = h.Sid
	case HeaderTypeWide:
		buf[0] = uint8(h.Type) & 0x0F
		buf[1] = h.Gid
		buf[2] = h.Sid
	}
	return n, nil
}

// Unpack decodes a Header from the front of buf according to ht.
func Unpack(ht HeaderType, buf []byte) (Header, error) {
	n, err := HeaderLen(ht)
	if err != nil {
		return Header{}, err
	}
	if len(buf) < n {
		return Header{}, ErrBufferTooShort
	}
	var h Header
	switch ht {
	case HeaderTypeNarrow:
		h.Type = PayloadType(buf[0] >> 5)
		h.Gid = (buf[0] >> 3) & 0x03
		h.Sid = buf[0] & 0x07
	case HeaderTypeStandard:
		h.Type = PayloadType(buf[0] >> 5)
		h.Gid = buf[0] & 0x1F
		h.Sid = buf[1]
	case HeaderTypeWide:
		h.Type = PayloadType(buf[0] & 0x0F)
		h.Gid = buf[1]
		h.Sid = buf[2]
	}
	if h.Type > PayloadSADFD {
		return Header{}, ErrInvalidPayloadType
	}
	return h, nil
}
