package hosted

import (
	"github.com/coreos/go-systemd/daemon"
)

// NotifyReady tells systemd the daemon has finished starting up, grounded
// on the teacher's ptp/c4u.SdNotify helper. It is a no-op (returns nil,
// nil meaning) when NOTIFY_SOCKET isn't set, e.g. when not run under
// systemd at all.
func NotifyReady() error {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if !supported && err != nil {
		return err
	}
	return err
}

// NotifyWatchdog pets the systemd watchdog, for use on a timer derived
// from WATCHDOG_USEC in a long-running cmd/cbsclientd process.
func NotifyWatchdog() error {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
	if !supported && err != nil {
		return err
	}
	return err
}
