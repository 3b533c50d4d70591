package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hosted checkout form metrics
	formsBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_forms_built_total",
			Help: "Total number of hosted checkout forms built",
		},
		[]string{"variant", "status"},
	)

	// Gateway notification metrics
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_notifications_total",
			Help: "Total number of gateway notifications received",
		},
		[]string{"variant", "decision"},
	)

	signatureFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_notification_signature_failures_total",
			Help: "Total number of notifications whose signature failed verification",
		},
		[]string{"variant"},
	)
)

// RecordFormBuilt records one hosted checkout form build attempt
func RecordFormBuilt(variant string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	formsBuiltTotal.WithLabelValues(variant, status).Inc()
}

// RecordNotification records one received gateway notification by decision
func RecordNotification(variant, decision string) {
	if decision == "" {
		decision = "unknown"
	}
	notificationsTotal.WithLabelValues(variant, decision).Inc()
}

// RecordSignatureFailure records one failed notification verification
func RecordSignatureFailure(variant string) {
	signatureFailuresTotal.WithLabelValues(variant).Inc()
}
