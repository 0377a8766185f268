package rest

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "todoctl"

// instrument wraps next with request counters and latency histograms
// registered on reg. Collectors already registered by another client on the
// same registry are reused.
func instrument(reg prometheus.Registerer, next http.RoundTripper) (http.RoundTripper, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Backend requests by method and status code.",
	}, []string{"code", "method"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Backend request latency by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	if err := reg.Register(requests); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		requests = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return promhttp.InstrumentRoundTripperCounter(requests,
		promhttp.InstrumentRoundTripperDuration(duration, next)), nil
}

// RequestCount sums the request counter gathered from g.
func RequestCount(g prometheus.Gatherer) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() == metricsNamespace+"_client_requests_total" {
			total += counterSum(mf)
		}
	}
	return total, nil
}

func counterSum(mf *dto.MetricFamily) float64 {
	if mf.GetType() != dto.MetricType_COUNTER {
		return 0
	}
	var sum float64
	for _, m := range mf.GetMetric() {
		sum += m.GetCounter().GetValue()
	}
	return sum
}
