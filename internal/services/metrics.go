package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commute_poller_ticks_total",
		Help: "Total number of polling ticks executed.",
	})
	samplesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commute_poller_samples_recorded_total",
		Help: "Total number of travel-time samples successfully stored.",
	})
	pollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commute_poller_failures_total",
		Help: "Total number of route polls that failed and were skipped.",
	})
)
