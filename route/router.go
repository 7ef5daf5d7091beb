package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/tierroute/classify"
	"github.com/randalmurphal/tierroute/config"
	"github.com/randalmurphal/tierroute/model"
	"github.com/randalmurphal/tierroute/tokens"
)

// ErrAttemptsExhausted is returned by Run when every allowed attempt failed.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// Classifier explains which tier a description belongs to.
type Classifier interface {
	Explain(description string, previousFailed bool) classify.Decision
}

// Estimator predicts output tokens for a description.
type Estimator interface {
	Estimate(description string) float64
}

// Task is a unit of work to route.
type Task struct {
	Description    string
	PreviousFailed bool
	// Tokens is the expected output token count. Zero or less means estimate
	// it from Description.
	Tokens float64
}

// Decision is a routed task.
type Decision struct {
	ID     string          `json:"id"`
	Tier   model.Tier      `json:"tier"`
	Rule   classify.Rule   `json:"rule"`
	Signal string          `json:"signal,omitempty"`
	Model  model.ModelName `json:"model"`
	Tokens float64         `json:"tokens"`
	// Cost is the price of Tokens on Tier; PremiumCost is the same tokens on
	// the premium tier.
	Cost        float64 `json:"cost_usd"`
	PremiumCost float64 `json:"premium_cost_usd"`
	// Attempt is 1-based and only set by Run. Escalated marks an attempt made
	// after an earlier one failed.
	Attempt   int  `json:"attempt,omitempty"`
	Escalated bool `json:"escalated,omitempty"`
}

// Router routes tasks to tiers and models.
type Router struct {
	classifier Classifier
	selector   *model.Selector
	pricing    model.Pricing
	estimator  Estimator
	tracker    *model.UsageTracker
	policy     model.EscalationPolicy
	logger     *slog.Logger
	metrics    *Metrics
	newID      func() string
}

// Option configures a Router.
type Option func(*Router)

// WithClassifier sets the classifier. Default: classify.Default().
func WithClassifier(c Classifier) Option {
	return func(r *Router) { r.classifier = c }
}

// WithSelector sets the model selector. Default: model.NewSelector().
func WithSelector(s *model.Selector) Option {
	return func(r *Router) { r.selector = s }
}

// WithPricing sets the price table. Default: model.DefaultPricing().
func WithPricing(p model.Pricing) Option {
	return func(r *Router) { r.pricing = p }
}

// WithEstimator sets the token estimator. Default: tokens.NewOutputEstimator().
func WithEstimator(e Estimator) Option {
	return func(r *Router) { r.estimator = e }
}

// WithTracker sets the usage tracker every routed task is recorded in.
func WithTracker(t *model.UsageTracker) Option {
	return func(r *Router) { r.tracker = t }
}

// WithEscalation sets the retry policy used by Run.
func WithEscalation(p model.EscalationPolicy) Option {
	return func(r *Router) { r.policy = p }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// New creates a router. It fails if the price table is invalid.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		classifier: classify.Default(),
		selector:   model.NewSelector(),
		pricing:    model.DefaultPricing(),
		estimator:  tokens.NewOutputEstimator(),
		policy:     model.DefaultEscalation,
		logger:     slog.Default(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.pricing.Validate(); err != nil {
		return nil, err
	}
	if r.tracker == nil {
		r.tracker = model.NewUsageTracker(r.pricing)
	}
	return r, nil
}

// FromConfig creates a router from a loaded configuration. Later options
// override the configured values.
func FromConfig(cfg *config.Config, opts ...Option) (*Router, error) {
	base := []Option{
		WithClassifier(cfg.Classifier()),
		WithSelector(cfg.Selector()),
		WithPricing(cfg.PricingTable()),
		WithEstimator(cfg.Estimator()),
		WithEscalation(cfg.EscalationPolicy()),
	}
	return New(append(base, opts...)...)
}

// Tracker returns the usage tracker the router records into.
func (r *Router) Tracker() *model.UsageTracker {
	return r.tracker
}

// Route classifies and prices a single task. A selector attached to ctx with
// model.NewContext takes precedence over the router's own.
func (r *Router) Route(ctx context.Context, task Task) (Decision, error) {
	return r.route(ctx, task, r.newID())
}

func (r *Router) route(ctx context.Context, task Task, id string) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	explained := r.classifier.Explain(task.Description, task.PreviousFailed)
	selector := r.selector
	if s, ok := model.FromContext(ctx); ok {
		selector = s
	}
	m, err := selector.SelectForTier(explained.Tier)
	if err != nil {
		return Decision{}, fmt.Errorf("select model: %w", err)
	}

	n := task.Tokens
	if n <= 0 {
		n = r.estimator.Estimate(task.Description)
	}
	cost, err := r.pricing.Cost(explained.Tier, n)
	if err != nil {
		return Decision{}, fmt.Errorf("price tier: %w", err)
	}
	premium, err := r.pricing.Cost(model.TierPremium, n)
	if err != nil {
		return Decision{}, fmt.Errorf("price premium tier: %w", err)
	}

	d := Decision{
		ID:          id,
		Tier:        explained.Tier,
		Rule:        explained.Rule,
		Signal:      explained.Signal,
		Model:       m,
		Tokens:      n,
		Cost:        cost,
		PremiumCost: premium,
	}
	if err := r.tracker.Record(d.Tier, d.Tokens); err != nil {
		return Decision{}, err
	}
	r.metrics.observe(d)

	r.logger.Debug("task routed",
		slog.String("id", d.ID),
		slog.Int("tier", int(d.Tier)),
		slog.String("rule", string(d.Rule)),
		slog.String("signal", d.Signal),
		slog.String("model", string(d.Model)),
		slog.Float64("tokens", d.Tokens),
		slog.Float64("cost_usd", d.Cost),
	)
	return d, nil
}

// AttemptFunc performs one attempt of a routed task.
type AttemptFunc func(ctx context.Context, d Decision) error

// Run routes task and calls attempt with the decision. When attempt fails the
// task is re-routed with PreviousFailed set, which sends it to the premium
// tier, until attempt succeeds or the escalation policy runs out.
// The returned decision is the last one attempted.
func (r *Router) Run(ctx context.Context, task Task, attempt AttemptFunc) (Decision, error) {
	id := r.newID()
	var state *model.EscalationState

	for {
		d, err := r.route(ctx, task, id)
		if err != nil {
			return d, err
		}
		if state == nil {
			state = model.NewEscalationState(&r.policy, d.Tier)
		}
		d.Attempt = state.Attempt + 1
		d.Escalated = state.Failed()

		err = attempt(ctx, d)
		if err == nil {
			return d, nil
		}
		r.metrics.failure(d)

		retry := state.RecordFailure(err)
		r.logger.Warn("attempt failed",
			slog.String("id", d.ID),
			slog.Int("tier", int(d.Tier)),
			slog.Int("attempt", d.Attempt),
			slog.Bool("retry", retry),
			slog.Any("error", err),
		)
		if state.Exhausted() {
			return d, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, state.Attempt, err)
		}
		if r.policy.CanEscalate(d.Tier) {
			r.logger.Info("escalating to premium tier",
				slog.String("id", d.ID),
				slog.Int("from", int(d.Tier)),
			)
		}
		task.PreviousFailed = true
	}
}
