package queue

import "github.com/prometheus/client_golang/prometheus"

var depthGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "matchmaking_queue_depth",
		Help: "Tickets currently waiting per stake partition",
	},
	[]string{"stake"},
)

func init() {
	prometheus.MustRegister(depthGauge)
}
