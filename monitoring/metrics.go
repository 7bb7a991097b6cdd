package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Booking creation attempts by outcome status",
		},
		[]string{"status"},
	)

	capacityConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_capacity_conflicts_total",
			Help: "Bookings rejected because the slot had no remaining capacity",
		},
	)

	promoValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_validations_total",
			Help: "Promo code validations by result",
		},
		[]string{"result"},
	)

	bookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_create_duration_seconds",
			Help:    "Duration of booking creation including the reservation transaction",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "experience_cache_requests_total",
			Help: "Experience cache lookups by result",
		},
		[]string{"result"},
	)
)

func TrackBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

func TrackCapacityConflict() {
	capacityConflicts.Inc()
}

func TrackPromoValidation(result string) {
	promoValidations.WithLabelValues(result).Inc()
}

func ObserveBookingDuration(d time.Duration) {
	bookingDuration.Observe(d.Seconds())
}

func TrackCacheRequest(result string) {
	cacheRequests.WithLabelValues(result).Inc()
}
