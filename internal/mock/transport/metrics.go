package transport

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the registry does with outbound calls.
type Metrics struct {
	intercepted *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	passThrough prometheus.Counter
	installed   prometheus.Gauge
}

// NewMetrics builds the collectors and registers them with reg. A nil reg
// keeps them private, which is what tests want.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		intercepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mock",
				Subsystem: "transport",
				Name:      "intercepted_total",
				Help:      "Outbound calls served by a mock domain",
			},
			[]string{"domain", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mock",
				Subsystem: "transport",
				Name:      "handle_duration_seconds",
				Help:      "Time spent serving an intercepted call",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"domain"},
		),
		passThrough: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mock",
			Subsystem: "transport",
			Name:      "pass_through_total",
			Help:      "Outbound calls no mock domain claimed",
		}),
		installed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mock",
			Subsystem: "transport",
			Name:      "installed_domains",
			Help:      "Number of installed mock domains",
		}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.intercepted, err = register(reg, m.intercepted); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, m.latency); err != nil {
		return nil, err
	}
	if m.passThrough, err = register(reg, m.passThrough); err != nil {
		return nil, err
	}
	if m.installed, err = register(reg, m.installed); err != nil {
		return nil, err
	}
	return m, nil
}

// register adopts an already registered collector of the same shape, so a
// layer can be rebuilt against the same registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *Metrics) recordIntercept(domain string, status int, took time.Duration) {
	m.intercepted.WithLabelValues(domain, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(domain).Observe(took.Seconds())
}

func (m *Metrics) recordPassThrough() {
	m.passThrough.Inc()
}

func (m *Metrics) recordInstalled(n int) {
	m.installed.Set(float64(n))
}
