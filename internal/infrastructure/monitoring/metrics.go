// Package monitoring provides the zap logger implementation and Prometheus
// metrics for the finsmart core service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the service records into.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateLimitRejections *prometheus.CounterVec
	RateLimitBuckets    prometheus.GaugeFunc

	AuditQueueDepth    prometheus.Gauge
	AuditDropped       prometheus.Counter
	AuditWriteFailures prometheus.Counter
	AuditWritten       prometheus.Counter

	GatewayRequestDuration *prometheus.HistogramVec
	GatewayErrors          *prometheus.CounterVec

	FeedbackSubmissions *prometheus.CounterVec
	FeedbackExported    prometheus.Counter
}

// NewMetrics registers all collectors on the given registerer.
// bucketCount reports the live rate-limit bucket count; may be nil.
func NewMetrics(reg prometheus.Registerer, bucketCount func() float64) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsmart_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finsmart_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RateLimitRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsmart_ratelimit_rejections_total",
			Help: "Requests rejected by the admission layer, by endpoint class.",
		}, []string{"class"}),

		AuditQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finsmart_audit_queue_depth",
			Help: "Audit records waiting in the background queue.",
		}),
		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsmart_audit_dropped_total",
			Help: "Audit records dropped because the queue was full or closed.",
		}),
		AuditWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsmart_audit_write_failures_total",
			Help: "Audit persistence attempts that failed.",
		}),
		AuditWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsmart_audit_written_total",
			Help: "Audit records successfully persisted.",
		}),

		GatewayRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finsmart_ai_gateway_duration_seconds",
			Help:    "Latency of calls to the AI prediction service, by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		GatewayErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsmart_ai_gateway_errors_total",
			Help: "Failed calls to the AI prediction service, by operation.",
		}, []string{"operation"}),

		FeedbackSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsmart_feedback_submissions_total",
			Help: "Feedback records accepted, by kind.",
		}, []string{"kind"}),
		FeedbackExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsmart_feedback_exported_total",
			Help: "Feedback records published to the retraining feed.",
		}),
	}

	if bucketCount != nil {
		m.RateLimitBuckets = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "finsmart_ratelimit_buckets",
			Help: "Live token buckets in the admission registry.",
		}, bucketCount)
	}

	return m
}

// NewTestMetrics returns metrics bound to a throwaway registry.
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry(), nil)
}
