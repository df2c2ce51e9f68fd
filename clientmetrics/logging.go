package clientmetrics

import (
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/cansec/cbs-client/client"
)

// LoggingObserver implements client.Observer by writing one colorized
// logrus debug/warning line per callback, grounded on the teacher's
// Client.logSent/logReceive trace helpers in ptp/sptp/client/client.go.
type LoggingObserver struct{}

func (LoggingObserver) OnHandshakeStarted(gid uint8) {
	log.Debugf(color.GreenString("[gid=%d] handshake started", gid))
}

func (LoggingObserver) OnHandshakeEstablished(gid uint8) {
	log.Debugf(color.GreenString("[gid=%d] handshake established", gid))
}

func (LoggingObserver) OnRenewalOverlapEntered(gid uint8) {
	log.Debugf(color.BlueString("[gid=%d] entered renewal overlap", gid))
}

func (LoggingObserver) OnRenewalOverlapExited(gid uint8) {
	log.Debugf(color.BlueString("[gid=%d] exited renewal overlap", gid))
}

func (LoggingObserver) OnRejected(gid uint8, reason client.Error) {
	log.Warningf(color.RedString("[gid=%d] rejected: %s", gid, reason.Error()))
}

var _ client.Observer = LoggingObserver{}
