// README: Prometheus collectors for plan generation, normalization and photo enrichment.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderplan/internal/tripplan"
)

var (
	NormalizeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderplan_normalize_total",
			Help: "Model responses normalized, by outcome.",
		},
		[]string{"outcome"},
	)
	PhotoLookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderplan_photo_lookups_total",
			Help: "Photo lookups done by the enricher, by outcome (found, none, error).",
		},
		[]string{"outcome"},
	)
	PhotoCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderplan_photo_cache_total",
			Help: "Photo cache reads, by result (hit, miss, error).",
		},
		[]string{"result"},
	)
	EnrichDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wanderplan_enrich_duration_seconds",
			Help:    "Wall time of one photo enrichment pass.",
			Buckets: prometheus.DefBuckets,
		},
	)
	PlansGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderplan_plans_generated_total",
			Help: "Plans generated, by text provider.",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(NormalizeCounter)
	prometheus.MustRegister(PhotoLookupCounter)
	prometheus.MustRegister(PhotoCacheCounter)
	prometheus.MustRegister(EnrichDuration)
	prometheus.MustRegister(PlansGenerated)
}

// Lookup outcomes.
const (
	LookupFound = "found"
	LookupNone  = "none"
	LookupError = "error"
)

// Cache read results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ObserveNormalize records the outcome of one tripplan.Normalize call.
func ObserveNormalize(err error) {
	NormalizeCounter.WithLabelValues(NormalizeOutcome(err)).Inc()
}

// NormalizeOutcome maps a normalizer error to its metric label.
func NormalizeOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tripplan.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, tripplan.ErrInvalidStructure):
		return "invalid_structure"
	case errors.Is(err, tripplan.ErrMissingField):
		return "missing_field"
	default:
		return "error"
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
