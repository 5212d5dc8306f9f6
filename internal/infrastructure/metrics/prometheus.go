package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/sales"
)

var (
	_ inventory.Metrics = (*Collector)(nil)
	_ sales.Metrics     = (*Collector)(nil)
)

// Collector agrupa las métricas del libro de stock, ventas y HTTP en un registry propio.
type Collector struct {
	registry *prometheus.Registry

	stockMovements  *prometheus.CounterVec
	stockUnits      *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	salesTotal      *prometheus.CounterVec
	salesAmount     *prometheus.CounterVec
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registra las métricas del dominio más los collectors de Go y del proceso.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		stockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_movements_total",
				Help:      "Movimientos registrados en el historial de stock",
			},
			[]string{"movement_type", "change_type"},
		),
		stockUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_units_total",
				Help:      "Unidades movidas (valor absoluto del cambio)",
			},
			[]string{"movement_type"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_rejected_total",
				Help:      "Operaciones rechazadas por motivo",
			},
			[]string{"operation", "reason"},
		),
		salesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_total",
				Help:      "Ventas creadas o que cambiaron de estado",
			},
			[]string{"status"},
		),
		salesAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_amount_total",
				Help:      "Monto total de las ventas por estado",
			},
			[]string{"status"},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Requests HTTP por método, ruta y status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duración de requests HTTP en segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.stockMovements, c.stockUnits, c.rejections,
		c.salesTotal, c.salesAmount,
		c.requestCounter, c.requestDuration,
	)
	return c
}

// Registry para exponer vía promhttp.HandlerFor.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveMovement cuenta un movimiento del historial.
func (c *Collector) ObserveMovement(movementType, changeType string, delta int) {
	c.stockMovements.WithLabelValues(movementType, changeType).Inc()
	if delta < 0 {
		delta = -delta
	}
	c.stockUnits.WithLabelValues(movementType).Add(float64(delta))
}

// ObserveRejection cuenta una operación rechazada.
func (c *Collector) ObserveRejection(operation, reason string) {
	c.rejections.WithLabelValues(operation, reason).Inc()
}

// ObserveSale cuenta una venta y su monto por estado.
func (c *Collector) ObserveSale(status string, total decimal.Decimal) {
	c.salesTotal.WithLabelValues(status).Inc()
	amount, _ := total.Float64()
	c.salesAmount.WithLabelValues(status).Add(amount)
}

// ObserveRequest registra un request HTTP terminado.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
