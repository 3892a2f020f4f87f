package cookiesession

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the optional Prometheus instrumentation. Every method is
// nil-safe so callers never have to check whether metrics were enabled.
type metrics struct {
	restored   prometheus.Counter
	rejected   *prometheus.CounterVec
	writeBacks *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		restored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cookiesession",
			Name:      "sessions_restored_total",
			Help:      "Requests whose inbound cookie decoded into a valid session",
		}),

		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cookiesession",
			Name:      "tokens_rejected_total",
			Help:      "Inbound session tokens rejected, by reason",
		}, []string{"reason"}),

		writeBacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cookiesession",
			Name:      "write_backs_total",
			Help:      "Session write-backs, by outcome",
		}, []string{"outcome"}),
	}
}

func (mt *metrics) restoredSession() {
	if mt == nil {
		return
	}
	mt.restored.Inc()
}

func (mt *metrics) rejectedToken(reason string) {
	if mt == nil {
		return
	}
	mt.rejected.WithLabelValues(reason).Inc()
}

func (mt *metrics) writeBack(outcome string) {
	if mt == nil {
		return
	}
	mt.writeBacks.WithLabelValues(outcome).Inc()
}
