package route

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records routing activity.
//
// Metrics:
//   - tierroute_decisions_total: Routed tasks by tier and rule
//   - tierroute_cost_usd_total: Estimated spend by tier
//   - tierroute_premium_cost_usd_total: Spend had every task gone premium
//   - tierroute_task_tokens: Estimated output tokens per task (histogram)
//   - tierroute_attempt_failures_total: Failed attempts by tier
type Metrics struct {
	decisions   *prometheus.CounterVec
	cost        *prometheus.CounterVec
	premiumCost prometheus.Counter
	tokens      *prometheus.HistogramVec
	failures    *prometheus.CounterVec
}

// NewMetrics creates and registers routing metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tierroute",
				Name:      "decisions_total",
				Help:      "Routed tasks by tier and classification rule",
			},
			[]string{"tier", "rule"},
		),
		cost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tierroute",
				Name:      "cost_usd_total",
				Help:      "Estimated spend in USD by tier",
			},
			[]string{"tier"},
		),
		premiumCost: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tierroute",
				Name:      "premium_cost_usd_total",
				Help:      "Estimated spend in USD had every task used the premium tier",
			},
		),
		tokens: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tierroute",
				Name:      "task_tokens",
				Help:      "Estimated output tokens per routed task",
				Buckets:   []float64{250, 500, 1000, 2000, 4000, 8000, 16000, 32000},
			},
			[]string{"tier"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tierroute",
				Name:      "attempt_failures_total",
				Help:      "Failed attempts by tier",
			},
			[]string{"tier"},
		),
	}

	reg.MustRegister(m.decisions, m.cost, m.premiumCost, m.tokens, m.failures)
	return m
}

func (m *Metrics) observe(d Decision) {
	if m == nil {
		return
	}
	tier := d.Tier.String()
	m.decisions.WithLabelValues(tier, string(d.Rule)).Inc()
	m.cost.WithLabelValues(tier).Add(d.Cost)
	m.premiumCost.Add(d.PremiumCost)
	m.tokens.WithLabelValues(tier).Observe(d.Tokens)
}

func (m *Metrics) failure(d Decision) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(d.Tier.String()).Inc()
}
