package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Ledger(t *testing.T) {
	c := New("test")

	c.ObserveMovement("OUTGOING", "Sale", -3)
	c.ObserveMovement("OUTGOING", "Sale", -2)
	c.ObserveMovement("INCOMING", "Manual Update", 10)
	c.ObserveRejection("adjust_stock", "insufficient_stock")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.stockMovements.WithLabelValues("OUTGOING", "Sale")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.stockUnits.WithLabelValues("OUTGOING")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.stockUnits.WithLabelValues("INCOMING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejections.WithLabelValues("adjust_stock", "insufficient_stock")))
}

func TestCollector_SalesAndHTTP(t *testing.T) {
	c := New("test")

	c.ObserveSale("Completed", decimal.RequireFromString("220.99"))
	c.ObserveSale("Completed", decimal.RequireFromString("10.01"))
	c.ObserveRequest("GET", "/health", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.salesTotal.WithLabelValues("Completed")))
	assert.InDelta(t, 231.0, testutil.ToFloat64(c.salesAmount.WithLabelValues("Completed")), 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestCounter.WithLabelValues("GET", "/health", "200")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_sales_total"])
	assert.True(t, names["test_http_request_duration_seconds"])
	assert.True(t, names["go_goroutines"])
}
