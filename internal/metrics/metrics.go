package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitch",
			Name:      "availability_resolved_total",
			Help:      "Count of slot grids resolved by source.",
		},
		[]string{"source"},
	)

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitch",
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by result.",
		},
		[]string{"result"},
	)

	paymentAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitch",
			Name:      "payment_attempt_total",
			Help:      "Count of payment attempts by method and result.",
		},
		[]string{"method", "result"},
	)

	paymentsBlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pitch",
			Name:      "payment_blocked_total",
			Help:      "Count of payment pages blocked after exhausting retries.",
		},
	)

	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitch",
			Name:      "api_error_total",
			Help:      "Count of backend call failures by operation.",
		},
		[]string{"operation"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityResolved, checkouts, paymentAttempts, paymentsBlocked, apiErrors)
	})
}

func IncAvailability(source string) {
	availabilityResolved.WithLabelValues(source).Inc()
}

func IncCheckout(result string) {
	checkouts.WithLabelValues(result).Inc()
}

func IncPaymentAttempt(method, result string) {
	paymentAttempts.WithLabelValues(method, result).Inc()
}

func IncPaymentBlocked() {
	paymentsBlocked.Inc()
}

func IncAPIError(operation string) {
	apiErrors.WithLabelValues(operation).Inc()
}
