package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	budgetsCreated            *prometheus.CounterVec
	budgetsDeleted            prometheus.Counter
	expensesRecorded          prometheus.Counter
	expenseAmount             prometheus.Histogram
	dashboardRequests         *prometheus.CounterVec
	dashboardDuration         prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		budgetsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgets_created_total",
				Help: "Total number of budgets created",
			},
			[]string{"period"},
		),
		budgetsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "budgets_deleted_total",
				Help: "Total number of budgets deleted",
			},
		),
		expensesRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_recorded_total",
				Help: "Total number of expenses recorded",
			},
		),
		expenseAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_amount",
				Help:    "Recorded expense amounts in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 6),
			},
		),
		dashboardRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_requests_total",
				Help: "Total number of dashboard composition requests",
			},
			[]string{"status"},
		),
		dashboardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_compose_duration_seconds",
				Help:    "Dashboard composition duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "budget.created":
		period := tags["period"]
		if period == "" {
			period = "unknown"
		}
		m.budgetsCreated.WithLabelValues(period).Inc()
	case "budget.deleted":
		m.budgetsDeleted.Inc()
	case "expense.recorded":
		m.expensesRecorded.Inc()
	case "dashboard.request":
		if status := tags["status"]; status != "" {
			m.dashboardRequests.WithLabelValues(status).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "dashboard.compose":
		m.dashboardDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "expense_amount":
		m.expenseAmount.Observe(value)
	}
}
