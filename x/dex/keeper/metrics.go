package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the DEX module.
type Metrics struct {
	SwapsTotal       *prometheus.CounterVec
	SwapVolume       *prometheus.CounterVec
	SwapFeesAccrued  *prometheus.CounterVec
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolsTotal       prometheus.Gauge
	RewardsPaid      *prometheus.CounterVec
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *Metrics
)

// NewMetrics creates and registers DEX metrics (singleton pattern).
func NewMetrics() *Metrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "token"},
			),
			SwapFeesAccrued: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "swap_fees_total",
					Help:      "Total swap fees accrued in base units",
				},
				[]string{"pool_id"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added in base units",
				},
				[]string{"pool_id", "token"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed in base units",
				},
				[]string{"pool_id", "token"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "pools_total",
					Help:      "Number of active liquidity pools",
				},
			),
			RewardsPaid: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "lumen",
					Subsystem: "dex",
					Name:      "lp_rewards_total",
					Help:      "Total LP rewards credited in base units",
				},
				[]string{"pool_id"},
			),
		}
	})
	return dexMetrics
}
