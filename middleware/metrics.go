package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the middleware.
type Metrics struct {
	// RequestsTotal counts requests by mode (validate, extract) and result
	// (ok, invalid, malformed, too_large, error).
	RequestsTotal *prometheus.CounterVec
}

// NewMetrics registers the middleware collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goshape",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Requests checked against a schema, by mode and result",
			},
			[]string{"mode", "result"},
		),
	}
}
