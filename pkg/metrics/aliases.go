package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch/api"
)

const resultLabel = "result"

type AliasCheckMetrics struct {
	Exists    int64
	NotExists int64
	Errors    int64
}

// AliasCheckTracker records alias lookups in prometheus collectors.
type AliasCheckTracker struct {
	metrics AliasCheckMetrics

	promChecks   *prometheus.CounterVec
	promDuration prometheus.Histogram
}

var _ api.AliasObserver = (*AliasCheckTracker)(nil)

func NewAliasCheckTracker(constLabels map[string]string) *AliasCheckTracker {
	return &AliasCheckTracker{
		promChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "opni_osalias",
			Subsystem:   "alias",
			Name:        "checks_total",
			ConstLabels: constLabels,
			Help:        "Total number of alias existence checks sent to the cluster, by result",
		}, []string{resultLabel}),
		promDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "opni_osalias",
			Subsystem:   "alias",
			Name:        "check_duration_seconds",
			ConstLabels: constLabels,
			Help:        "Round trip time of alias existence checks",
			Buckets:     prometheus.DefBuckets,
		}),
	}
}

func (t *AliasCheckTracker) ObserveAliasCheck(result string, duration time.Duration) {
	switch result {
	case api.AliasResultExists:
		atomic.AddInt64(&t.metrics.Exists, 1)
	case api.AliasResultNotExists:
		atomic.AddInt64(&t.metrics.NotExists, 1)
	default:
		result = api.AliasResultError
		atomic.AddInt64(&t.metrics.Errors, 1)
	}
	t.promChecks.WithLabelValues(result).Inc()
	t.promDuration.Observe(duration.Seconds())
}

func (t *AliasCheckTracker) MetricsCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		t.promChecks,
		t.promDuration,
	}
}

func (t *AliasCheckTracker) MetricsSnapshot() AliasCheckMetrics {
	return AliasCheckMetrics{
		Exists:    atomic.LoadInt64(&t.metrics.Exists),
		NotExists: atomic.LoadInt64(&t.metrics.NotExists),
		Errors:    atomic.LoadInt64(&t.metrics.Errors),
	}
}
