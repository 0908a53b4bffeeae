package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics captures tutoring pipeline outcomes.
type ChatMetrics interface {
	IncChatOutcome(outcome string)
	ObserveCompletion(provider string, durationSeconds float64)
}

// GatewayMetrics captures request metrics for the HTTP surface.
type GatewayMetrics interface {
	ObserveRequest(method, route, status string, durationSeconds float64)
}

// Noop implements ChatMetrics and GatewayMetrics without emitting anything.
type Noop struct{}

func (Noop) IncChatOutcome(string)                          {}
func (Noop) ObserveCompletion(string, float64)              {}
func (Noop) ObserveRequest(string, string, string, float64) {}

// Prom implements both interfaces. The server exposes
// prometheus.DefaultRegisterer on /metrics, so production code registers
// there; tests pass their own registry.
type Prom struct {
	chatRequests       *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewProm(namespace string, reg prometheus.Registerer) *Prom {
	p := &Prom{
		chatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by terminal outcome",
		}, []string{"outcome"}),
		completionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of completion service calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		p.chatRequests,
		p.completionDuration,
		p.httpRequests,
		p.httpDuration,
	)
	return p
}

func (p *Prom) IncChatOutcome(outcome string) {
	p.chatRequests.WithLabelValues(outcome).Inc()
}

func (p *Prom) ObserveCompletion(provider string, durationSeconds float64) {
	p.completionDuration.WithLabelValues(provider).Observe(durationSeconds)
}

func (p *Prom) ObserveRequest(method, route, status string, durationSeconds float64) {
	p.httpRequests.WithLabelValues(method, route, status).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
