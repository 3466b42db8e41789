package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseman_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "houseman_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)

	bookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseman_booking_transitions_total",
			Help: "Booking status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	kycReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseman_kyc_reviews_total",
			Help: "KYC review decisions by resulting status",
		},
		[]string{"status"},
	)

	bookingsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "houseman_bookings_expired_total",
			Help: "Pending bookings cancelled because their date passed",
		},
	)
)

// ObserveRequest records one served HTTP request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func ObserveRequest(method, path string, status int, latency time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(latency.Seconds())
}

func RecordBookingTransition(from, to string) {
	bookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordKYCReview(status string) {
	kycReviewsTotal.WithLabelValues(status).Inc()
}

func RecordBookingsExpired(n int) {
	bookingsExpiredTotal.Add(float64(n))
}

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
