package client

import (
	"golang.org/x/exp/slices"

	"github.com/cansec/cbs-client/pdu"
	"github.com/cansec/cbs-client/secret"
)

// ServerSid is the reserved source identifier for the Server; no Client may
// use it (§3).
const ServerSid uint8 = 0

// BroadcastGid is the mandatory broadcast group; every Config must include
// it as groups[0] (§3).
const BroadcastGid uint8 = 0

// MaxGroups bounds how many groups a single Config may list. The
// specification leaves the exact ceiling to the implementation; this keeps
// group lookups (and the embedded-target memory budget) bounded.
const MaxGroups = 64

// MaxCtrNonceDelayLimit is the largest legal value for
// GroupConfig.MaxCtrNonceDelayMsgs (§3: "u32 in [0, 0xFFFFFF-1]").
const MaxCtrNonceDelayLimit = pdu.MaxCtrNonce - 1

// GroupConfig is the immutable per-group configuration (§3).
type GroupConfig struct {
	Gid                      uint8
	MaxCtrNonceDelayMsgs     uint32
	MaxSilenceIntervalMS     uint16
	SessionRenewalDurationMS uint16
}

// Config is the immutable, validated client configuration (§3). Once passed
// to New, it is never mutated.
type Config struct {
	TimeoutReqToResMS uint16
	Ltk               secret.Key16
	Sid               uint8
	HeaderType        pdu.HeaderType
	Groups            []GroupConfig
}

// groupIndex returns the index of gid within cfg.Groups, or -1. Groups are
// few (MaxGroups) and immutable, so a straight scan is fine; it's written
// with golang.org/x/exp/slices.IndexFunc rather than a hand-rolled loop to
// keep the lookup declarative.
func (c *Config) groupIndex(gid uint8) int {
	return slices.IndexFunc(c.Groups, func(g GroupConfig) bool {
		return g.Gid == gid
	})
}

// validate checks the structural invariants from §4.6. It does not check
// clock/TRNG nil-ness; that is the caller (New)'s job, since *Config itself
// has no notion of IO.
func (c *Config) validate() error {
	if c.Ltk.IsZero() {
		return ErrLtkAllZeros
	}
	if c.Sid == ServerSid {
		return ErrServerSidAssignedToClient
	}
	maxSid, err := pdu.MaxSid(c.HeaderType)
	if err != nil {
		return ErrInvalidHeaderType
	}
	if uint16(c.Sid) > maxSid {
		return ErrSidTooLarge
	}
	if len(c.Groups) == 0 {
		return ErrZeroGroups
	}
	if len(c.Groups) > MaxGroups {
		return ErrTooManyGroups
	}
	maxGid, err := pdu.MaxGid(c.HeaderType)
	if err != nil {
		return ErrInvalidHeaderType
	}
	for i, g := range c.Groups {
		if uint16(g.Gid) > maxGid {
			return ErrGidTooLarge
		}
		if i > 0 && g.Gid <= c.Groups[i-1].Gid {
			return ErrGidsNotPresortedAscending
		}
		if g.MaxCtrNonceDelayMsgs > MaxCtrNonceDelayLimit {
			return ErrInvalidMaxCtrnonceDelay
		}
	}
	// Checked after the ascending scan so a genuinely unsorted list (e.g.
	// [{gid=1},{gid=0}]) is reported as that, not as a missing gid 0.
	if c.Groups[0].Gid != BroadcastGid {
		return ErrMissingGid0
	}
	return nil
}
