// Package ctrdelay computes the freshness window (§4.2): how far behind the
// locally known counter nonce a received one may lag and still be accepted,
// as a function of how long the bus has been silent. The longer the
// silence, the less slack is granted — after maxSilenceMS of silence only
// nonces at or above the local counter are accepted.
package ctrdelay

import "github.com/cansec/cbs-client/timeutil"

// Window returns the maximum acceptable positive lag (delta) of a received
// counter nonce behind the locally known one.
//
//	elapsed = wrap_delta(lastValidRx, now)
//	if elapsed >= maxSilenceMS: return 0
//	fraction = elapsed / maxSilenceMS
//	return ceil(maxCtrNonceDelay * (1 - fraction))
//
// maxSilenceMS == 0 disables the window entirely (always returns 0) via the
// early exit on elapsed >= maxSilenceMS, never dividing by zero.
func Window(lastValidRx, now timeutil.Timestamp, maxCtrNonceDelay uint32, maxSilenceMS uint16) uint32 {
	elapsed := timeutil.Delta(lastValidRx, now)
	if maxSilenceMS == 0 || elapsed >= uint32(maxSilenceMS) {
		return 0
	}
	remaining := uint64(maxSilenceMS) - uint64(elapsed)
	// ceil(maxCtrNonceDelay * remaining / maxSilenceMS)
	num := uint64(maxCtrNonceDelay) * remaining
	den := uint64(maxSilenceMS)
	return uint32((num + den - 1) / den)
}
