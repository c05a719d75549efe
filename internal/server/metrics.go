package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors reported on /metrics.
type Metrics struct {
	assessments   *prometheus.CounterVec
	chatMessages  prometheus.Counter
	registrations prometheus.Counter
	requests      *prometheus.HistogramVec
}

// NewMetrics registers the server collectors with reg. It panics on a
// registration conflict, like promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "serenity",
			Name:      "assessments_completed_total",
			Help:      "Completed assessments by resulting category.",
		}, []string{"category"}),
		chatMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "serenity",
			Name:      "chat_messages_sent_total",
			Help:      "Chat messages accepted from members.",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "serenity",
			Name:      "registrations_total",
			Help:      "Members registered.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "serenity",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.assessments, m.chatMessages, m.registrations, m.requests)
	return m
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
