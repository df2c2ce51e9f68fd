package hosted

import (
	"encoding/hex"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/cansec/cbs-client/client"
	"github.com/cansec/cbs-client/pdu"
)

// YAMLGroupProfile is the human-authored form of client.GroupConfig, kept
// separate so field names can stay yaml-idiomatic without constraining the
// core package's Go field names.
type YAMLGroupProfile struct {
	Gid                      uint8  `yaml:"gid"`
	MaxCtrNonceDelayMsgs     uint32 `yaml:"max_ctrnonce_delay_msgs"`
	MaxSilenceIntervalMS     uint16 `yaml:"max_silence_interval_ms"`
	SessionRenewalDurationMS uint16 `yaml:"session_renewal_duration_ms"`
}

// YAMLProfile is a human-authored superset of client.Config (§4.8): the
// LTK is hex-encoded and the header type is a name rather than a raw enum
// value, mirroring the teacher's habit (ptp/sptp/client.Config, read via
// ReadConfig) of hand-editable YAML compiled down to the strict runtime
// type.
type YAMLProfile struct {
	TimeoutReqToResMS uint16             `yaml:"timeout_req_to_res_ms"`
	LtkHex            string             `yaml:"ltk_hex"`
	Sid               uint8              `yaml:"sid"`
	HeaderType        string             `yaml:"header_type"`
	Groups            []YAMLGroupProfile `yaml:"groups"`
}

// ErrUnknownHeaderTypeName is returned by Compile for a header_type value
// that isn't one of "narrow", "standard" or "wide".
var ErrUnknownHeaderTypeName = fmt.Errorf("hosted: unknown header_type name")

func headerTypeByName(name string) (pdu.HeaderType, error) {
	switch name {
	case "narrow":
		return pdu.HeaderTypeNarrow, nil
	case "standard":
		return pdu.HeaderTypeStandard, nil
	case "wide":
		return pdu.HeaderTypeWide, nil
	default:
		return 0, ErrUnknownHeaderTypeName
	}
}

// ReadYAMLProfile reads and parses a YAML client profile from path.
func ReadYAMLProfile(path string) (*YAMLProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &YAMLProfile{}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Compile converts a YAMLProfile into a client.Config. It does not itself
// validate the result against the protocol's structural invariants —
// client.New does that, the single source of truth for §4.6.
func (p *YAMLProfile) Compile() (client.Config, error) {
	ltkBytes, err := hex.DecodeString(p.LtkHex)
	if err != nil {
		return client.Config{}, fmt.Errorf("decoding ltk_hex: %w", err)
	}
	if len(ltkBytes) != 16 {
		return client.Config{}, fmt.Errorf("ltk_hex must decode to 16 bytes, got %d", len(ltkBytes))
	}
	ht, err := headerTypeByName(p.HeaderType)
	if err != nil {
		return client.Config{}, err
	}

	cfg := client.Config{
		TimeoutReqToResMS: p.TimeoutReqToResMS,
		Sid:               p.Sid,
		HeaderType:        ht,
		Groups:            make([]client.GroupConfig, len(p.Groups)),
	}
	copy(cfg.Ltk[:], ltkBytes)
	for i, g := range p.Groups {
		cfg.Groups[i] = client.GroupConfig{
			Gid:                      g.Gid,
			MaxCtrNonceDelayMsgs:     g.MaxCtrNonceDelayMsgs,
			MaxSilenceIntervalMS:     g.MaxSilenceIntervalMS,
			SessionRenewalDurationMS: g.SessionRenewalDurationMS,
		}
	}
	return cfg, nil
}
