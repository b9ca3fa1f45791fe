package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ValidationRequests conta requisições de validação por desfecho
	// (valid, invalid, indeterminate, bad_request, rate_limited,
	// upstream_error, internal_error).
	ValidationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aos_validator_requests_total",
		Help: "Total validation requests by outcome",
	}, []string{"outcome"})

	// UpstreamDuration mede a latência da chamada ao webhook de validação,
	// incluindo tentativas que estouram o timeout.
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aos_validator_upstream_duration_seconds",
		Help:    "Latency of upstream webhook calls",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler expõe as métricas no formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
