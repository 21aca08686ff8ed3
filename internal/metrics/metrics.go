// README: Prometheus collectors for geocoding, lookups and batch runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_geocode_requests_total",
		Help: "Geocoder calls issued to the upstream provider",
	}, []string{"provider"})
	GeocodeFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_geocode_fail_total",
		Help: "Geocoder failures by kind (not_found, transport)",
	}, []string{"provider", "kind"})
	GeocodeDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freight_geocode_duration_ms",
		Help:    "Upstream geocoder call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"provider"})
	GeocodeCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_geocode_cache_hits_total",
		Help: "Resolver cache hits by tier (memory, shared)",
	}, []string{"tier"})
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_lookups_total",
		Help: "Single destination lookups by outcome",
	}, []string{"outcome"})
	BatchRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_batch_rows_total",
		Help: "Batch destination rows by outcome",
	}, []string{"outcome"})
	PersistFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_persist_fail_total",
		Help: "Persistence sink write failures by entity",
	}, []string{"entity"})
)

func init() {
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeFailTotal)
	prometheus.MustRegister(GeocodeDurationMs)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(BatchRowsTotal)
	prometheus.MustRegister(PersistFailTotal)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler { return promhttp.Handler() }
