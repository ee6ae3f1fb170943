package queue

import "github.com/prometheus/client_golang/prometheus"

var (
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "pending_depth",
			Help:      "Number of jobs waiting for admission",
		},
	)

	activeSlots = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "active_slots",
			Help:      "Number of occupied processing slots",
		},
	)

	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "jobs_total",
			Help:      "Jobs finished, by outcome",
		},
		[]string{"outcome"},
	)

	jobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Backend invocation latency per admitted job",
			Buckets:   prometheus.DefBuckets,
		},
	)

	broadcastsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "broadcasts_total",
			Help:      "ETA broadcasts sent to pending clients",
		},
	)

	deadChannelsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatchd",
			Subsystem: "queue",
			Name:      "dead_channels_total",
			Help:      "Jobs dropped because their client channel died",
		},
	)
)

// Outcome labels for jobsTotal.
const (
	outcomeCompleted    = "completed"
	outcomeBackendError = "backend_error"
	outcomeDeadChannel  = "dead_channel"
	outcomeCanceled     = "canceled"
)

func init() {
	prometheus.MustRegister(queueDepth, activeSlots, jobsTotal, jobDuration, broadcastsTotal, deadChannelsTotal)
}
