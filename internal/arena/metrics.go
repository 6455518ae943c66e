package arena

import "github.com/prometheus/client_golang/prometheus"

var (
	matchesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_started_total",
			Help: "Matches created, by opponent mode",
		},
		[]string{"mode"},
	)
	matchesResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_resolved_total",
			Help: "Matches resolved, by winning hand category",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(matchesStarted)
	prometheus.MustRegister(matchesResolved)
}
