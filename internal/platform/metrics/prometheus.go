package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the service's Prometheus metrics on a private registry.
type Manager struct {
	Registry          *prometheus.Registry
	RoomsCreatedTotal prometheus.Counter
	LikesTotal        prometheus.Counter
	UnlikesTotal      prometheus.Counter
	APIErrorsTotal    *prometheus.CounterVec
	APILatency        *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	roomsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "rooms_created_total",
		Help:      "Total number of rooms created.",
	})
	likesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "likes_total",
		Help:      "Total number of successful like operations.",
	})
	unlikesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "unlikes_total",
		Help:      "Total number of successful unlike operations.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route and status.",
	}, []string{"route", "status"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		roomsCreatedTotal,
		likesTotal,
		unlikesTotal,
		apiErrorsTotal,
		apiLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		RoomsCreatedTotal: roomsCreatedTotal,
		LikesTotal:        likesTotal,
		UnlikesTotal:      unlikesTotal,
		APIErrorsTotal:    apiErrorsTotal,
		APILatency:        apiLatency,
	}
}

// StartServer exposes /metrics on its own port. Blocks; run in a goroutine.
func StartServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
