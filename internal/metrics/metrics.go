package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	uploadsTotal      *prometheus.CounterVec
)

// InitMetrics registers the collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airgo_http_requests_total",
			Help: "HTTP requests processed, by method, path and status.",
		}, []string{"method", "path", "status"})

		httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airgo_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airgo_panorama_uploads_total",
			Help: "Panorama upload attempts, by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(httpRequestsTotal, httpDuration, uploadsTotal)
	})
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		if httpRequestsTotal != nil {
			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		}
		if httpDuration != nil {
			httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		}
	}
}

// ObserveUpload counts one upload attempt with the given outcome
// ("ok", "invalid", "decode_failed", "storage_error").
func ObserveUpload(outcome string) {
	if uploadsTotal != nil {
		uploadsTotal.WithLabelValues(outcome).Inc()
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
