package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntriesCreated *prometheus.CounterVec
	EntriesDeleted prometheus.Counter
	EntryAmount    *prometheus.HistogramVec

	// Reminder metrics
	RemindersCreated   prometheus.Counter
	BillsDetected      prometheus.Counter
	RemindersPaid      prometheus.Counter
	SideEffectFailures *prometheus.CounterVec

	// Report metrics
	ReportQueries *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Authentication metrics
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_entries_created_total",
				Help: "Total number of ledger entries created by kind",
			},
			[]string{"kind"},
		),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_entries_deleted_total",
			Help: "Total number of ledger entries deleted",
		}),
		EntryAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbook_entry_amount",
				Help:    "Ledger entry amounts",
				Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
			},
			[]string{"kind"},
		),

		RemindersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_reminders_created_total",
			Help: "Total number of payment reminders created",
		}),
		BillsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_bills_detected_total",
			Help: "Total number of bill entries that spawned a reminder",
		}),
		RemindersPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_reminders_paid_total",
			Help: "Total number of reminders marked paid",
		}),
		SideEffectFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_side_effect_failures_total",
				Help: "Total number of failed cross-entity side effects by event type",
			},
			[]string{"event_type"},
		),

		ReportQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_report_queries_total",
				Help: "Total report queries by report type",
			},
			[]string{"report"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"cache"},
		),

		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_outbox_errors_total",
			Help: "Total outbox publish errors",
		}),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
