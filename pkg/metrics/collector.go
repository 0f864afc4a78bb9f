package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration attempts labeled by status",
		},
		[]string{"status"},
	)
	accessCodeValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_code_validations_total",
			Help: "Total number of access code validations labeled by result",
		},
		[]string{"result"},
	)
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of emails dispatched labeled by kind and status",
		},
		[]string{"kind", "status"},
	)
	tradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paper_trades_total",
			Help: "Total number of paper DEX trades labeled by side and status",
		},
		[]string{"side", "status"},
	)
	analysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of technical analysis requests labeled by status",
		},
		[]string{"status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	pendingCodeEmails = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_code_emails",
			Help: "Number of registrants whose access code email is still scheduled",
		},
	)
)

// RecordRegistration counts one registration attempt.
func RecordRegistration(status string) {
	if status == "" {
		status = "unknown"
	}
	registrationsTotal.WithLabelValues(status).Inc()
}

// RecordValidation counts one access code validation.
func RecordValidation(result string) {
	if result == "" {
		result = "unknown"
	}
	accessCodeValidationsTotal.WithLabelValues(result).Inc()
}

// RecordEmail counts one email dispatch attempt.
func RecordEmail(kind, status string) {
	if kind == "" {
		kind = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	emailsSentTotal.WithLabelValues(kind, status).Inc()
}

// RecordTrade counts one paper trade.
func RecordTrade(side, status string) {
	if side == "" {
		side = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	tradesTotal.WithLabelValues(side, status).Inc()
}

// RecordAnalysis counts one technical analysis request.
func RecordAnalysis(status string) {
	if status == "" {
		status = "unknown"
	}
	analysisRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHTTPRequest observes a completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// SetPendingCodeEmails publishes the current scheduled-email backlog.
func SetPendingCodeEmails(count int) {
	pendingCodeEmails.Set(float64(count))
}
