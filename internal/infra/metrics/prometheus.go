package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heroxshorts_uploads_total",
		Help: "Simulated uploads by flow and outcome",
	}, []string{"flow", "outcome"})

	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heroxshorts_jobs_total",
		Help: "Simulated processing jobs by flow and outcome",
	}, []string{"flow", "outcome"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heroxshorts_notifications_total",
		Help: "Toasts raised, by variant",
	}, []string{"variant"})

	FeedPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heroxshorts_feed_polls_total",
		Help: "Project feed listings, by tab",
	}, []string{"type"})

	SimulatedDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "heroxshorts_simulated_duration_seconds",
		Help:    "Clock time spent in simulated delays",
		Buckets: []float64{0.5, 1, 1.5, 2, 3, 5, 10},
	}, []string{"task"})

	InFlightTasks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "heroxshorts_inflight_tasks",
		Help: "Simulated tasks currently holding a timer",
	}, []string{"task"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "heroxshorts_active_sessions",
		Help: "Open page sessions",
	})
)
