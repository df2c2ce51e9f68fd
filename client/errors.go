package client

// Error is the single enumerated error type every core client operation
// returns (§7). Values are comparable with errors.Is directly since Error
// implements error without wrapping.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Parameter / config errors (§4.6, §7).
const (
	ErrNullConfig                Error = "client: nil config"
	ErrNullIO                    Error = "client: nil clock or trng provider"
	ErrInvalidHeaderType         Error = "client: invalid header type"
	ErrZeroGroups                Error = "client: zero groups configured"
	ErrTooManyGroups             Error = "client: too many groups configured"
	ErrLtkAllZeros               Error = "client: ltk is all zeros"
	ErrServerSidAssignedToClient Error = "client: sid equals reserved server sid"
	ErrSidTooLarge               Error = "client: sid too large for header type"
	ErrGidTooLarge               Error = "client: gid too large for header type"
	ErrGidsNotPresortedAscending Error = "client: group gids are not strictly ascending"
	ErrMissingGid0               Error = "client: groups[0].gid must be 0"
	ErrInvalidMaxCtrnonceDelay   Error = "client: max_ctrnonce_delay_msgs out of range"
	ErrUnknownGroup              Error = "client: unknown group id"
)

// Framing errors (§7), surfaced from the pdu package through the processor
// and builders.
const (
	ErrTooShortPduForHeader Error = "client: pdu too short for header"
	ErrTooShortPduForBody   Error = "client: pdu too short for payload body"
	ErrTooLongCiphertext    Error = "client: ciphertext too long"
	ErrInvalidPayloadType   Error = "client: invalid payload type"
	ErrTooLongSdu           Error = "client: sdu too long"
	ErrNullPdu              Error = "client: nil pdu"
	ErrNullSdu              Error = "client: nil sdu"
)

// State errors (§7).
const (
	ErrHandshakeOngoing      Error = "client: handshake already ongoing"
	ErrSessionNotEstablished Error = "client: no established session for group"
)

// Security warnings (§7) — not necessarily bugs, but frames that must be
// rejected.
const (
	ErrSecWarnMessageFromMyself    Error = "client: message claims to be from our own sid"
	ErrSecWarnServerOnlyMessage    Error = "client: message type only valid from the server"
	ErrSecWarnReceivedOverflownNonce Error = "client: received nonce is the expired sentinel"
	ErrSecWarnOldMessage           Error = "client: received nonce is too old"
	ErrSecWarnInvalidTag           Error = "client: aead tag did not authenticate"
	ErrSecWarnNotExpectingAResponse Error = "client: no outstanding request for this response"
	ErrSecWarnResponseTimeout      Error = "client: response arrived after the handshake timed out"
)

// Provider errors (§7).
const (
	ErrCannotGetCurrentTime        Error = "client: clock provider failed"
	ErrCannotGenerateRandom        Error = "client: random provider failed"
	ErrCannotGenerateNonZeroRandom Error = "client: random provider could not produce a non-zero value"
)

// ErrMessageIgnored is a control-flow sentinel (§7): the frame was not for
// us, or otherwise irrelevant, and is not an error to bubble up to a user
// interface — callers should treat it as "nothing happened", not a failure.
const ErrMessageIgnored Error = "client: message ignored"
