package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the inventory counters. A nil *Metrics records nothing.
type Metrics struct {
	StockTransactions *prometheus.CounterVec
	CheckoutRejected  prometheus.Counter
	TagsApplied       prometheus.Counter
	TagsDeleted       prometheus.Counter
}

// New builds the collectors and registers them on reg (the default registerer when nil).
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		StockTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_stock_transactions_total",
			Help: "Ledger rows written, by direction.",
		}, []string{"direction"}),
		CheckoutRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_checkout_rejected_total",
			Help: "Check-outs refused for insufficient stock.",
		}),
		TagsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_tags_applied_total",
			Help: "Tag applications to components.",
		}),
		TagsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_tags_deleted_total",
			Help: "Tags deleted.",
		}),
	}
	for _, c := range []prometheus.Collector{m.StockTransactions, m.CheckoutRejected, m.TagsApplied, m.TagsDeleted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveTransaction(direction string) {
	if m == nil {
		return
	}
	m.StockTransactions.WithLabelValues(direction).Inc()
}

func (m *Metrics) ObserveCheckoutRejected() {
	if m == nil {
		return
	}
	m.CheckoutRejected.Inc()
}

func (m *Metrics) ObserveTagApplied() {
	if m == nil {
		return
	}
	m.TagsApplied.Inc()
}

func (m *Metrics) ObserveTagDeleted() {
	if m == nil {
		return
	}
	m.TagsDeleted.Inc()
}
