package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMain(m *testing.M) {
	// Регистрация одна на процесс: повторный MustRegister паникует.
	metrics.MustRegister()
	m.Run()
}

func TestSaleTransitions_CountersByLabel(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.SaleTransitions.WithLabelValues("approve", "ok"))
	invBefore := testutil.ToFloat64(metrics.SaleTransitions.WithLabelValues("approve", "invalid"))

	metrics.SaleTransitions.WithLabelValues("approve", "ok").Inc()
	metrics.SaleTransitions.WithLabelValues("approve", "ok").Inc()
	metrics.SaleTransitions.WithLabelValues("approve", "invalid").Inc()

	if got := testutil.ToFloat64(metrics.SaleTransitions.WithLabelValues("approve", "ok")); got != okBefore+2 {
		t.Fatalf("SaleTransitions(approve,ok): got=%v want=%v", got, okBefore+2)
	}
	if got := testutil.ToFloat64(metrics.SaleTransitions.WithLabelValues("approve", "invalid")); got != invBefore+1 {
		t.Fatalf("SaleTransitions(approve,invalid): got=%v want=%v", got, invBefore+1)
	}
}

func TestStockReservations_Inc(t *testing.T) {
	before := testutil.ToFloat64(metrics.StockReservations.WithLabelValues("reserved"))
	metrics.StockReservations.WithLabelValues("reserved").Inc()
	if got := testutil.ToFloat64(metrics.StockReservations.WithLabelValues("reserved")); got != before+1 {
		t.Fatalf("StockReservations(reserved): got=%v want=%v", got, before+1)
	}
}

func TestGatewayEventCounters_Inc(t *testing.T) {
	topic := "payments"
	beforeConsumed := testutil.ToFloat64(metrics.GatewayEventsConsumed.WithLabelValues(topic))
	beforeFailed := testutil.ToFloat64(metrics.GatewayEventsFailed.WithLabelValues(topic))

	metrics.GatewayEventsConsumed.WithLabelValues(topic).Inc()
	metrics.GatewayEventsFailed.WithLabelValues(topic).Inc()

	if got := testutil.ToFloat64(metrics.GatewayEventsConsumed.WithLabelValues(topic)); got != beforeConsumed+1 {
		t.Fatalf("GatewayEventsConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.GatewayEventsFailed.WithLabelValues(topic)); got != beforeFailed+1 {
		t.Fatalf("GatewayEventsFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	cur := testutil.ToFloat64(metrics.CacheSize)

	metrics.CacheSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}
	metrics.CacheSize.Set(cur)
}
