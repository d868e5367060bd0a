// Package metrics exposes Prometheus collectors for sales, stock movements
// and state flushes.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

const namespace = "tpv"

type Metrics struct {
	reg *prometheus.Registry

	sales         prometheus.Counter
	revenue       prometheus.Counter
	itemsSold     prometheus.Counter
	stockMoves    *prometheus.CounterVec
	flushDuration prometheus.Histogram
	flushErrors   prometheus.Counter
}

// New registers the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sales: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Sales recorded.",
		}),
		revenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Sum of recorded sale totals.",
		}),
		itemsSold: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_items_quantity_total",
			Help:      "Quantity sold across all sale lines.",
		}),
		stockMoves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Manual stock adjustments by direction.",
		}, []string{"direction"}),
		flushDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "state_flush_duration_seconds",
			Help:      "Time spent writing the state document to its slot.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		flushErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_flush_errors_total",
			Help:      "Failed state writes.",
		}),
	}
}

// ObserveSale is meant to be registered with sale.WithObserver.
func (m *Metrics) ObserveSale(sale pos.Sale) {
	m.sales.Inc()
	m.revenue.Add(sale.Total.InexactFloat64())

	for _, it := range sale.Items {
		m.itemsSold.Add(it.Quantity.InexactFloat64())
	}
}

// ObserveAdjustment is meant to be registered with stock.WithObserver.
func (m *Metrics) ObserveAdjustment(_ pos.Product, delta decimal.Decimal) {
	direction := "in"
	if delta.IsNegative() {
		direction = "out"
	}

	m.stockMoves.WithLabelValues(direction).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry is exposed for tests and for registering extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

type persister struct {
	next store.Persister
	m    *Metrics
}

// Persister times every Save of next.
func (m *Metrics) Persister(next store.Persister) store.Persister {
	return &persister{next: next, m: m}
}

func (p *persister) Load(ctx context.Context) (*pos.State, error) {
	return p.next.Load(ctx)
}

func (p *persister) Save(ctx context.Context, s *pos.State) error {
	start := time.Now()
	err := p.next.Save(ctx, s)
	p.m.flushDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.m.flushErrors.Inc()
	}

	return err
}
