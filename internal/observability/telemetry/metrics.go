package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aura_active_rooms",
		Help: "Number of rooms currently running",
	})

	SegmentsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_segments_started_total",
		Help: "Total run segments started",
	})

	SessionsEndedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_sessions_ended_total",
		Help: "Total sessions closed and archived",
	})

	ItemsAttachedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_items_attached_total",
		Help: "Total item units attached to sessions",
	})

	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_revenue_total",
		Help: "Total archived revenue in smallest currency units",
	})

	StateSaveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_state_save_errors_total",
		Help: "Failed state persistence attempts",
	})
)
