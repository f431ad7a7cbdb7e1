package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "igdash_http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"route", "method", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "igdash_http_request_duration_seconds",
		Help:    "HTTP request duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	UpstreamCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "igdash_upstream_calls_total",
		Help: "Total calls to the scraping provider",
	}, []string{"endpoint", "outcome"})
	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "igdash_upstream_call_duration_seconds",
		Help:    "Provider call duration seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})
	ImageProxyBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "igdash_image_proxy_bytes_total",
		Help: "Total image bytes relayed by the proxy",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, UpstreamCalls, UpstreamDuration, ImageProxyBytes)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served HTTP request
func ObserveRequest(route, method string, status int, start time.Time) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}

// ObserveUpstream records one provider call. outcome is "ok" or an error type.
func ObserveUpstream(endpoint, outcome string, start time.Time) {
	UpstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// AddProxiedBytes counts image bytes streamed to clients
func AddProxiedBytes(n int64) {
	if n > 0 {
		ImageProxyBytes.Add(float64(n))
	}
}
