package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчик и гистограмма исходящих вызовов бэкенда.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics регистрирует метрики в reg (nil — prometheus.DefaultRegisterer).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Outgoing backend calls by operation and status class.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Outgoing backend call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(m.calls, m.duration)

	return m
}

// WithMetrics считает вызовы; status — класс ответа ("2xx", "4xx", ...) или "error".
func WithMetrics(m *Metrics) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if m == nil {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			op := operation(r.Context())

			resp, err := next.RoundTrip(r)

			m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
			m.calls.WithLabelValues(op, statusClass(resp, err)).Inc()

			return resp, err
		})
	}
}

func statusClass(resp *http.Response, err error) string {
	if err != nil || resp == nil {
		return "error"
	}

	return strconv.Itoa(resp.StatusCode/100) + "xx"
}
