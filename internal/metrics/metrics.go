package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eclat",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eclat",
			Name:      "reservation_created_total",
			Help:      "Count of accepted reservations by kind.",
		},
		[]string{"kind"},
	)

	reservationFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eclat",
			Name:      "reservation_failed_total",
			Help:      "Count of reservation submissions rejected by the gateway.",
		},
	)

	stepTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eclat",
			Name:      "flow_step_total",
			Help:      "Count of reservation flow transitions by resulting step.",
		},
		[]string{"step"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationCreated, reservationFailed, stepTransitions)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncReservationCreated(kind string) {
	reservationCreated.WithLabelValues(kind).Inc()
}

func IncReservationFailed() {
	reservationFailed.Inc()
}

func IncStep(step string) {
	stepTransitions.WithLabelValues(step).Inc()
}
