package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_orders_submitted_total",
			Help: "Total number of orders submitted (by strategy and order type).",
		},
		[]string{"strategy", "type"},
	)

	StopReplacements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_stop_replacements_total",
			Help: "Protective-stop replacements actually performed (by reason).",
		},
		[]string{"strategy", "reason"},
	)

	StopUpdatesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_stop_updates_skipped_total",
			Help: "Stop updates suppressed by the ratchet or anti-churn guard.",
		},
		[]string{"strategy", "guard"},
	)

	TradesClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_trades_closed_total",
			Help: "Closing fills recorded in the ledger (by outcome).",
		},
		[]string{"strategy", "outcome"},
	)

	PositionsOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gostrat_positions_open",
			Help: "Current number of open positions per strategy.",
		},
		[]string{"strategy"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gostrat_equity",
			Help: "Current equity of the execution gateway (paper or live).",
		},
	)
)

func init() {
	prometheus.MustRegister(
		OrdersSubmitted,
		StopReplacements,
		StopUpdatesSkipped,
		TradesClosed,
		PositionsOpen,
		EquityGauge,
	)
}
