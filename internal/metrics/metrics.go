package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReceiptsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantry_receipts_ingested_total",
		Help: "Number of receipts ingested.",
	})

	ItemsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantry_items_ingested_total",
		Help: "Number of inventory items created through receipt ingestion.",
	})

	ConsumptionEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantry_consumption_events_total",
		Help: "Number of recorded consumption events.",
	})

	SuggestionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantry_suggestion_failures_total",
		Help: "Number of degraded suggestion responses.",
	})
)
