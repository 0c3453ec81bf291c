// Package metrics exposes Prometheus instrumentation for sign-ups, storage calls and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics groups every collector the service registers.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SignUps            *prometheus.CounterVec
	SignUpDuration     *prometheus.HistogramVec
	RepositoryDuration *prometheus.HistogramVec
	CacheLookups       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers the collectors on reg; nil means the default registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SignUps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Sign-up attempts by role and result kind",
		}, []string{"role", "result"}),
		SignUpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "signup_duration_seconds",
			Help:      "Sign-up use case latency",
			Buckets:   durationBuckets,
		}, []string{"role", "outcome"}),
		RepositoryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_duration_seconds",
			Help:      "Repository call latency by repository and method",
			Buckets:   durationBuckets,
		}, []string{"repository", "method", "outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_cache_lookups_total",
			Help:      "Account cache lookups by method and result",
		}, []string{"method", "result"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   durationBuckets,
		}, []string{"method", "route"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveSignUp records one use case execution.
func (m *Metrics) ObserveSignUp(role string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = string(apperror.KindOf(err))
	}
	m.SignUps.WithLabelValues(role, result).Inc()
	m.SignUpDuration.WithLabelValues(role, outcome(err)).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveRepository(repository, method string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.RepositoryDuration.WithLabelValues(repository, method, outcome(err)).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCache(method string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(method, result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, started time.Time) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}
