package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// instruments holds the engine's prometheus collectors. A Matcher always has
// one; when no Registerer is configured the collectors live on a private
// registry and are never exported.
type instruments struct {
	pairsScored prometheus.Counter
	passes      *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newInstruments(reg prometheus.Registerer) *instruments {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &instruments{
		pairsScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "crosswalk_pairs_scored_total",
			Help: "Total number of left/right value pairs scored.",
		}),
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crosswalk_match_passes_total",
			Help: "Completed match passes by outcome.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosswalk_match_duration_seconds",
			Help:    "Wall-clock duration of match passes.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
