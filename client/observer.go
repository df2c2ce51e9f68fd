package client

// Observer is the ambient-layer hook the core state machine calls on group
// transitions. The core never imports a logging or metrics library itself
// (§1 Non-goals: "does not log"); it only calls through this interface, so
// that an outer layer (clientmetrics.PrometheusObserver,
// clientmetrics.LoggingObserver, or a caller's own type) can observe
// without the core knowing anything about Prometheus or logrus.
//
// Implementations must not block and must not call back into the Context
// that invoked them (§5: no suspension points, no re-entrancy).
type Observer interface {
	OnHandshakeStarted(gid uint8)
	OnHandshakeEstablished(gid uint8)
	OnRenewalOverlapEntered(gid uint8)
	OnRenewalOverlapExited(gid uint8)
	OnRejected(gid uint8, reason Error)
}

// NoopObserver implements Observer with no-ops; it is the default when New
// is given a nil Observer.
type NoopObserver struct{}

func (NoopObserver) OnHandshakeStarted(uint8)     {}
func (NoopObserver) OnHandshakeEstablished(uint8) {}
func (NoopObserver) OnRenewalOverlapEntered(uint8) {}
func (NoopObserver) OnRenewalOverlapExited(uint8) {}
func (NoopObserver) OnRejected(uint8, Error)      {}

var _ Observer = NoopObserver{}
