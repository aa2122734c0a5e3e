package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SaleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sale_transitions_total",
			Help: "Sale state machine transitions by name and result",
		},
		[]string{"transition", "result"}, // ok|invalid|validation|conflict|error
	)
	SalesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "Sales created by payment method",
		},
		[]string{"method"},
	)
	StockReservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_reservations_total",
			Help: "Stock ledger operations",
		},
		[]string{"result"}, // reserved|insufficient|released
	)
)

var (
	GatewayEventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_events_consumed_total",
			Help: "Payment gateway events fetched from the broker",
		},
		[]string{"topic"},
	)
	GatewayEventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_events_processed_total",
			Help: "Payment gateway events applied successfully",
		},
		[]string{"topic"},
	)
	GatewayEventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_events_failed_total",
			Help: "Payment gateway events failed to apply",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		SaleTransitions, SalesCreated, StockReservations,
		GatewayEventsConsumed, GatewayEventsProcessed, GatewayEventsFailed,
		CacheOps, CacheSize,
	)
}
