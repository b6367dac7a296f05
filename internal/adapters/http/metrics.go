package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics holds the panel's Prometheus collectors on a private registry.
type Metrics struct {
	registry         *prometheus.Registry
	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	actionResults    *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "valman",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "valman",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		actionResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "valman",
			Name:      "action_results_total",
			Help:      "Outcomes of restart and restore actions",
		}, []string{"action", "outcome"}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "valman",
			Name:      "provider_failures_total",
			Help:      "Dashboard providers that were unavailable during a render",
		}, []string{"provider"}),
	}
	m.registry.MustRegister(m.requestTotal, m.requestDuration, m.actionResults, m.providerFailures)
	return m
}

// ProviderFailed counts a provider outage; it matches services.FailureObserver.
func (m *Metrics) ProviderFailed(provider string, _ error) {
	m.providerFailures.With(prometheus.Labels{"provider": provider}).Inc()
}

func (m *Metrics) recordAction(action, outcome string) {
	m.actionResults.With(prometheus.Labels{"action": action, "outcome": outcome}).Inc()
}

func (m *Metrics) instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  c.Route().Path,
			"status": strconv.Itoa(status),
		}
		m.requestTotal.With(labels).Inc()
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		return err
	}
}

// handler exposes the registry through fiber's net/http adaptor.
func (m *Metrics) handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
