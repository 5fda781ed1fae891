package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "grammable",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grammable",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grammable",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	GramsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "grammable",
			Subsystem: "grams",
			Name:      "created_total",
			Help:      "Total number of grams created.",
		},
	)

	GramsDestroyed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "grammable",
			Subsystem: "grams",
			Name:      "destroyed_total",
			Help:      "Total number of grams destroyed.",
		},
	)

	CommentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "grammable",
			Subsystem: "comments",
			Name:      "created_total",
			Help:      "Total number of comments created.",
		},
	)

	FeedClients = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "grammable",
			Subsystem: "feed",
			Name:      "clients",
			Help:      "Connected feed websocket clients by session.",
		},
		[]string{"session"},
	)

	FeedPublishErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "grammable",
			Subsystem: "feed",
			Name:      "publish_errors_total",
			Help:      "Feed events that could not be published.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		GramsCreated,
		GramsDestroyed,
		CommentsCreated,
		FeedClients,
		FeedPublishErrors,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and durations labelled by route pattern.
func GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		httpInFlight.Inc()
		start := time.Now()

		ctx.Next()

		httpInFlight.Dec()
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		httpDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
