package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Download metrics
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_fetch_requests_total",
			Help: "Total number of kline API requests issued",
		},
		[]string{"symbol", "interval"},
	)

	candlesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_fetch_candles_total",
			Help: "Total number of candles downloaded",
		},
		[]string{"symbol", "interval"},
	)

	// Market data metrics
	latestClose = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dca_fetch_latest_close",
			Help: "Close price of the most recent downloaded candle",
		},
		[]string{"symbol"},
	)

	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dca_fetch_duration_seconds",
			Help:    "Distribution of full-range download durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_fetch_errors_total",
			Help: "Total number of download errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(candlesTotal)
	prometheus.MustRegister(latestClose)
	prometheus.MustRegister(fetchDuration)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordRequest records a kline page request
func RecordRequest(symbol, interval string) {
	requestsTotal.WithLabelValues(symbol, interval).Inc()
}

// RecordCandles adds downloaded candles to the counter
func RecordCandles(symbol, interval string, count int) {
	candlesTotal.WithLabelValues(symbol, interval).Add(float64(count))
}

// UpdateLatestClose updates the latest close price gauge
func UpdateLatestClose(symbol string, price float64) {
	latestClose.WithLabelValues(symbol).Set(price)
}

// ObserveFetchDuration records how long a full-range download took
func ObserveFetchDuration(symbol string, seconds float64) {
	fetchDuration.WithLabelValues(symbol).Observe(seconds)
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
