// Package clientmetrics provides ambient client.Observer implementations —
// Prometheus counters and logrus lines — that plug into a client.Context
// without the core client package ever importing either library, mirroring
// how the teacher keeps ptp/sptp/client's protocol logic free of
// ptp/sptp/stats's prometheus.NewGauge/log.Fatalf calls.
package clientmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cansec/cbs-client/client"
)

// PrometheusObserver implements client.Observer by incrementing counters
// registered against a caller-supplied *prometheus.Registry, one vector per
// callback kind, labeled by group id and (for rejections) reason.
type PrometheusObserver struct {
	handshakeStarted     *prometheus.CounterVec
	handshakeEstablished *prometheus.CounterVec
	overlapEntered       *prometheus.CounterVec
	overlapExited        *prometheus.CounterVec
	rejected             *prometheus.CounterVec
}

// NewPrometheusObserver registers its counter vectors against reg and
// returns the observer. reg is typically a *prometheus.Registry dedicated
// to a single cmd/cbsclientd process, per the teacher's
// stats.NewPrometheusExporter(registry, ...) pattern.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		handshakeStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbs_client_handshake_started_total",
			Help: "Number of handshakes (REQ) started, by group id.",
		}, []string{"gid"}),
		handshakeEstablished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbs_client_handshake_established_total",
			Help: "Number of handshakes completed (valid RES accepted), by group id.",
		}, []string{"gid"}),
		overlapEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbs_client_renewal_overlap_entered_total",
			Help: "Number of times a group entered session-renewal overlap.",
		}, []string{"gid"}),
		overlapExited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbs_client_renewal_overlap_exited_total",
			Help: "Number of times a group exited session-renewal overlap.",
		}, []string{"gid"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cbs_client_rejected_total",
			Help: "Number of frames rejected, by group id and reason.",
		}, []string{"gid", "reason"}),
	}
	reg.MustRegister(o.handshakeStarted, o.handshakeEstablished, o.overlapEntered, o.overlapExited, o.rejected)
	return o
}

func gidLabel(gid uint8) string {
	// A single byte value formats cheaply without fmt.Sprintf; the label
	// cardinality is bounded by the 256 possible gid values (rejections can
	// carry gids of groups that are not configured).
	const hex = "0123456789abcdef"
	return string([]byte{hex[gid>>4], hex[gid&0x0F]})
}

// OnHandshakeStarted implements client.Observer.
func (o *PrometheusObserver) OnHandshakeStarted(gid uint8) {
	o.handshakeStarted.WithLabelValues(gidLabel(gid)).Inc()
}

// OnHandshakeEstablished implements client.Observer.
func (o *PrometheusObserver) OnHandshakeEstablished(gid uint8) {
	o.handshakeEstablished.WithLabelValues(gidLabel(gid)).Inc()
}

// OnRenewalOverlapEntered implements client.Observer.
func (o *PrometheusObserver) OnRenewalOverlapEntered(gid uint8) {
	o.overlapEntered.WithLabelValues(gidLabel(gid)).Inc()
}

// OnRenewalOverlapExited implements client.Observer.
func (o *PrometheusObserver) OnRenewalOverlapExited(gid uint8) {
	o.overlapExited.WithLabelValues(gidLabel(gid)).Inc()
}

// OnRejected implements client.Observer.
func (o *PrometheusObserver) OnRejected(gid uint8, reason client.Error) {
	o.rejected.WithLabelValues(gidLabel(gid), reason.Error()).Inc()
}

var _ client.Observer = (*PrometheusObserver)(nil)
