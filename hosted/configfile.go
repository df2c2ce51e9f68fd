package hosted

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cansec/cbs-client/client"
	"github.com/cansec/cbs-client/pdu"
)

// configMagic is the 4-byte file magic the binary config format starts
// with (§6): "HZL\0".
var configMagic = [4]byte{'H', 'Z', 'L', 0}

// groupRecordLen is the on-disk size of one GroupConfig record:
// gid(1) + max_ctrnonce_delay_msgs(4) + max_silence_interval_ms(2) +
// session_renewal_duration_ms(2).
const groupRecordLen = 1 + 4 + 2 + 2

// fixedHeaderLen is the on-disk size of everything between the magic and
// the GroupConfig array: timeout_req_to_res_ms(2) + ltk(16) + sid(1) +
// header_type(1) + group_count(1).
const fixedHeaderLen = 2 + 16 + 1 + 1 + 1

// ErrBadMagic is returned by LoadConfigFile when the file does not start
// with the expected magic.
var ErrBadMagic = fmt.Errorf("hosted: bad config file magic")

// ErrTruncatedConfigFile is returned when the file is shorter than its own
// declared group count implies.
var ErrTruncatedConfigFile = fmt.Errorf("hosted: truncated config file")

// LoadConfigFile reads and decodes the binary client configuration format
// (§6): magic ‖ ClientConfig ‖ GroupConfig[n], little-endian, no padding.
func LoadConfigFile(path string) (client.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return client.Config{}, err
	}
	return DecodeConfig(raw)
}

// DecodeConfig parses raw bytes in the binary config format.
func DecodeConfig(raw []byte) (client.Config, error) {
	if len(raw) < len(configMagic)+fixedHeaderLen {
		return client.Config{}, ErrTruncatedConfigFile
	}
	if [4]byte(raw[:4]) != configMagic {
		return client.Config{}, ErrBadMagic
	}
	off := len(configMagic)

	var cfg client.Config
	cfg.TimeoutReqToResMS = binary.LittleEndian.Uint16(raw[off:])
	off += 2
	copy(cfg.Ltk[:], raw[off:off+16])
	off += 16
	cfg.Sid = raw[off]
	off++
	cfg.HeaderType = pdu.HeaderType(raw[off])
	off++
	groupCount := int(raw[off])
	off++

	if len(raw) < off+groupCount*groupRecordLen {
		return client.Config{}, ErrTruncatedConfigFile
	}
	cfg.Groups = make([]client.GroupConfig, groupCount)
	for i := 0; i < groupCount; i++ {
		g := client.GroupConfig{}
		g.Gid = raw[off]
		off++
		g.MaxCtrNonceDelayMsgs = binary.LittleEndian.Uint32(raw[off:])
		off += 4
		g.MaxSilenceIntervalMS = binary.LittleEndian.Uint16(raw[off:])
		off += 2
		g.SessionRenewalDurationMS = binary.LittleEndian.Uint16(raw[off:])
		off += 2
		cfg.Groups[i] = g
	}
	return cfg, nil
}

// WriteConfigFile encodes cfg in the binary config format and writes it to
// path.
func WriteConfigFile(path string, cfg client.Config) error {
	return os.WriteFile(path, EncodeConfig(cfg), 0o600)
}

// EncodeConfig serializes cfg into the binary config format.
func EncodeConfig(cfg client.Config) []byte {
	buf := make([]byte, 0, len(configMagic)+fixedHeaderLen+len(cfg.Groups)*groupRecordLen)
	buf = append(buf, configMagic[:]...)

	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], cfg.TimeoutReqToResMS)
	buf = append(buf, u16[:]...)
	buf = append(buf, cfg.Ltk.Bytes()...)
	buf = append(buf, cfg.Sid, byte(cfg.HeaderType), byte(len(cfg.Groups)))

	for _, g := range cfg.Groups {
		buf = append(buf, g.Gid)
		var u32 [4]byte
		binary.LittleEndian.PutUint32(u32[:], g.MaxCtrNonceDelayMsgs)
		buf = append(buf, u32[:]...)
		binary.LittleEndian.PutUint16(u16[:], g.MaxSilenceIntervalMS)
		buf = append(buf, u16[:]...)
		binary.LittleEndian.PutUint16(u16[:], g.SessionRenewalDurationMS)
		buf = append(buf, u16[:]...)
	}
	return buf
}
