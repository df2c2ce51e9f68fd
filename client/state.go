package client

import (
	"github.com/cansec/cbs-client/aead"
	"github.com/cansec/cbs-client/pdu"
	"github.com/cansec/cbs-client/secret"
	"github.com/cansec/cbs-client/timeutil"
)

// groupState is the per-group mutable state owned exclusively by the
// library (§3). Zero value is the correct "no session" state.
type groupState struct {
	requestNonce              [pdu.ReqNonceSize]byte
	lastHandshakeEventInstant timeutil.Timestamp
	currentRxLastInstant      timeutil.Timestamp
	previousRxLastInstant     timeutil.Timestamp
	currentCtrNonce           uint32
	previousCtrNonce          uint32
	currentStk                secret.Key16
	previousStk               secret.Key16
}

func (s *groupState) zero() {
	secret.Zero(s.requestNonce[:])
	s.lastHandshakeEventInstant = 0
	s.currentRxLastInstant = 0
	s.previousRxLastInstant = 0
	s.currentCtrNonce = 0
	s.previousCtrNonce = 0
	s.currentStk.Zeroize()
	s.previousStk.Zeroize()
}

func (s *groupState) hasOutstandingRequest() bool {
	return !secret.IsZero(s.requestNonce[:])
}

func (s *groupState) hasSession() bool {
	return !s.currentStk.IsZero()
}

func (s *groupState) hasOverlap() bool {
	return !s.previousStk.IsZero()
}

func (s *groupState) isExpired() bool {
	return s.currentCtrNonce == pdu.CtrNonceExpired
}

// State is the externally-observable lifecycle state of a group (§4.3),
// used for diagnostics and tests. BuildRequest, BuildSecured and the SRN
// handler also dispatch on it via groupState.state.
type State int

// States, in the order they are introduced in §4.3.
const (
	StateNoSession State = iota
	StateHandshakePending
	StateHandshakeTimedOut
	StateEstablished
	StateOverlap
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "NoSession"
	case StateHandshakePending:
		return "HandshakePending"
	case StateHandshakeTimedOut:
		return "HandshakeTimedOut"
	case StateEstablished:
		return "Established"
	case StateOverlap:
		return "Overlap"
	case StateExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// state computes the current §4.3 state for gs as of now, given the
// handshake timeout from the client Config.
func (gs *groupState) state(now timeutil.Timestamp, timeoutReqToResMS uint16) State {
	if gs.isExpired() {
		return StateExpired
	}
	if gs.hasOutstandingRequest() {
		elapsed := timeutil.Delta(gs.lastHandshakeEventInstant, now)
		if elapsed > uint32(timeoutReqToResMS) {
			return StateHandshakeTimedOut
		}
		return StateHandshakePending
	}
	if gs.hasSession() {
		if gs.hasOverlap() {
			return StateOverlap
		}
		return StateEstablished
	}
	return StateNoSession
}

// GroupStateSnapshot is a read-only, secret-free view of a group's state
// (§4.10), letting diagnostics code and tests introspect sessions without
// reaching into unexported fields or ever seeing key bytes.
type GroupStateSnapshot struct {
	Gid                  uint8
	State                State
	CurrentCtrNonce      uint32
	PreviousCtrNonce     uint32
	HasCurrentSession    bool
	HasPreviousSession   bool
	HandshakeOutstanding bool
}

// Context is the per-Client runtime: immutable Config, injected IO, and the
// mutable per-group state the library owns (§3, §6). A Context is not safe
// for concurrent use (§5); distinct Contexts are fully independent.
type Context struct {
	cfg          Config
	clock        Clock
	trng         TRNG
	observer     Observer
	groups       []groupState
	newPrimitive func() aead.Primitive
}

// New validates cfg, wires the given Clock/TRNG (and optional Observer —
// pass nil for NoopObserver), and returns a zeroed Context (§4.6: "on
// success, zero all per-group state"). This is the Go-idiomatic form of
// the specification's init(ctx) plus the null-pointer checks the C API
// needed and Go's type system makes moot (Config is passed by value, so
// there is no nil config): ErrNullIO remains for the one case Go can't rule
// out statically — a nil Clock/TRNG interface value. New never returns
// ErrNullConfig.
func New(cfg Config, clock Clock, trng TRNG, observer Observer, opts ...Option) (*Context, error) {
	if clock == nil || trng == nil {
		return nil, ErrNullIO
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	ctx := &Context{
		cfg:          cfg,
		clock:        clock,
		trng:         trng,
		observer:     observer,
		groups:       make([]groupState, len(cfg.Groups)),
		newPrimitive: defaultPrimitiveFactory,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx, nil
}

// Deinit zeroes all per-group state, including secret key material (§3
// Lifecycle, §5 "zeroized on deinit"). It is idempotent: calling it twice is
// safe and leaves state zero both times.
func (c *Context) Deinit() {
	for i := range c.groups {
		c.groups[i].zero()
	}
}

func (c *Context) now() (timeutil.Timestamp, error) {
	t, err := c.clock.Now()
	if err != nil {
		return 0, ErrCannotGetCurrentTime
	}
	return t, nil
}

func (c *Context) groupByGid(gid uint8) (*groupState, error) {
	idx := c.cfg.groupIndex(gid)
	if idx < 0 {
		return nil, ErrUnknownGroup
	}
	return &c.groups[idx], nil
}

// GroupState returns a diagnostic, secret-free snapshot of the named
// group's state (§4.10).
func (c *Context) GroupState(gid uint8) (GroupStateSnapshot, error) {
	gs, err := c.groupByGid(gid)
	if err != nil {
		return GroupStateSnapshot{}, err
	}
	now, err := c.now()
	if err != nil {
		return GroupStateSnapshot{}, err
	}
	return GroupStateSnapshot{
		Gid:                  gid,
		State:                gs.state(now, c.cfg.TimeoutReqToResMS),
		CurrentCtrNonce:      gs.currentCtrNonce,
		PreviousCtrNonce:     gs.previousCtrNonce,
		HasCurrentSession:    gs.hasSession(),
		HasPreviousSession:   gs.hasOverlap(),
		HandshakeOutstanding: gs.hasOutstandingRequest(),
	}, nil
}
