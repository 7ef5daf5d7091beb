package model

import (
	"fmt"
	"sync"
)

// DefaultTokens is the token count priced when the caller has no better figure.
const DefaultTokens = 1000

// DaysPerMonth is the month length used for monthly projections.
const DaysPerMonth = 30

// tokensPerPriceUnit is the token volume a Pricing entry is quoted for.
const tokensPerPriceUnit = 1_000_000

// Pricing maps each tier to its price in USD per million output tokens.
type Pricing map[Tier]float64

// DefaultPricing returns approximate output-token prices for the
// representative model of each tier. Each call returns a fresh map.
func DefaultPricing() Pricing {
	return Pricing{
		TierRoutine:  0.28,  // DeepSeek V3
		TierModerate: 15.00, // Claude Sonnet
		TierPremium:  75.00, // Claude Opus
	}
}

// Validate checks that exactly the three tiers are priced and that prices
// strictly rise with the tier.
func (p Pricing) Validate() error {
	for tier := range p {
		if !tier.Valid() {
			return fmt.Errorf("pricing: %w", &InvalidTierError{Tier: tier})
		}
	}
	prev := 0.0
	for _, tier := range Tiers() {
		price, ok := p[tier]
		if !ok {
			return fmt.Errorf("pricing: %w", &InvalidTierError{Tier: tier})
		}
		if price <= 0 {
			return fmt.Errorf("pricing: tier %d price must be positive, got %g", tier, price)
		}
		if price <= prev {
			return fmt.Errorf("pricing: tier %d price %g must exceed tier %d price %g", tier, price, tier-1, prev)
		}
		prev = price
	}
	return nil
}

// Cost returns the USD cost of tokens output tokens on the given tier.
// Fractional token counts are allowed. A tier outside 1..3 or missing from
// the table yields an *InvalidTierError.
func (p Pricing) Cost(tier Tier, tokens float64) (float64, error) {
	if !tier.Valid() {
		return 0, &InvalidTierError{Tier: tier}
	}
	price, ok := p[tier]
	if !ok {
		return 0, &InvalidTierError{Tier: tier}
	}
	return tokens / tokensPerPriceUnit * price, nil
}

// Mix is the share of daily traffic routed to each tier.
// Shares are used as given; they are not required to sum to 1.
type Mix struct {
	Routine  float64 `json:"routine" yaml:"routine" toml:"routine"`
	Moderate float64 `json:"moderate" yaml:"moderate" toml:"moderate"`
	Complex  float64 `json:"complex" yaml:"complex" toml:"complex"`
}

// DefaultMix returns the assumed traffic mix: 80% routine, 15% moderate,
// 5% complex.
func DefaultMix() Mix {
	return Mix{Routine: 0.80, Moderate: 0.15, Complex: 0.05}
}

// Share returns the mix share for a tier, zero for an invalid tier.
func (m Mix) Share(tier Tier) float64 {
	switch tier {
	case TierRoutine:
		return m.Routine
	case TierModerate:
		return m.Moderate
	case TierPremium:
		return m.Complex
	default:
		return 0
	}
}

// DailyCost returns the cost of one day of dailyTokens output tokens split
// across tiers according to mix.
func (p Pricing) DailyCost(dailyTokens float64, mix Mix) (float64, error) {
	var total float64
	for _, tier := range Tiers() {
		c, err := p.Cost(tier, dailyTokens*mix.Share(tier))
		if err != nil {
			return 0, err
		}
		total += c
	}
	return total, nil
}

// MonthlyCost returns DaysPerMonth days of DailyCost.
func (p Pricing) MonthlyCost(dailyTokens float64, mix Mix) (float64, error) {
	daily, err := p.DailyCost(dailyTokens, mix)
	if err != nil {
		return 0, err
	}
	return daily * DaysPerMonth, nil
}

// PremiumMonthlyCost returns the monthly cost of sending every token to the
// premium tier.
func (p Pricing) PremiumMonthlyCost(dailyTokens float64) (float64, error) {
	daily, err := p.Cost(TierPremium, dailyTokens)
	if err != nil {
		return 0, err
	}
	return daily * DaysPerMonth, nil
}

// Comparison contrasts tiered routing with always using the premium tier.
type Comparison struct {
	DailyTokens  float64 `json:"daily_tokens"`
	Mix          Mix     `json:"mix"`
	Hierarchical float64 `json:"hierarchical_usd"`
	Premium      float64 `json:"premium_usd"`
	Savings      float64 `json:"savings_usd"`
	// Factor is Premium / Hierarchical, zero when Hierarchical is zero.
	Factor float64 `json:"factor"`
}

// Compare computes monthly costs for both routing policies.
func (p Pricing) Compare(dailyTokens float64, mix Mix) (Comparison, error) {
	hier, err := p.MonthlyCost(dailyTokens, mix)
	if err != nil {
		return Comparison{}, err
	}
	premium, err := p.PremiumMonthlyCost(dailyTokens)
	if err != nil {
		return Comparison{}, err
	}
	c := Comparison{
		DailyTokens:  dailyTokens,
		Mix:          mix,
		Hierarchical: hier,
		Premium:      premium,
		Savings:      premium - hier,
	}
	if hier != 0 {
		c.Factor = premium / hier
	}
	return c, nil
}

// Cost prices tokens on tier using DefaultPricing.
func Cost(tier Tier, tokens float64) (float64, error) {
	return DefaultPricing().Cost(tier, tokens)
}

// MonthlyCost projects a month of dailyTokens under mix using DefaultPricing.
func MonthlyCost(dailyTokens float64, mix Mix) float64 {
	// DefaultPricing covers every tier, so this cannot fail.
	c, _ := DefaultPricing().MonthlyCost(dailyTokens, mix)
	return c
}

// Usage tracks routed traffic for one tier.
type Usage struct {
	OutputTokens float64
	Requests     int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
}

// UsageTracker accumulates routed traffic per tier and prices it.
// It is safe for concurrent use.
type UsageTracker struct {
	mu      sync.RWMutex
	pricing Pricing
	totals  map[Tier]Usage
}

// NewUsageTracker creates a tracker priced with p, or DefaultPricing if p is nil.
func NewUsageTracker(p Pricing) *UsageTracker {
	if p == nil {
		p = DefaultPricing()
	}
	return &UsageTracker{
		pricing: p,
		totals:  make(map[Tier]Usage),
	}
}

// Record adds one request of tokens output tokens on tier.
func (t *UsageTracker) Record(tier Tier, tokens float64) error {
	if !tier.Valid() {
		return &InvalidTierError{Tier: tier}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[tier]
	u.OutputTokens += tokens
	u.Requests++
	t.totals[tier] = u
	return nil
}

// Usage returns the usage recorded for a tier.
func (t *UsageTracker) Usage(tier Tier) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[tier]
}

// Summary returns a copy of all usage totals.
func (t *UsageTracker) Summary() map[Tier]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[Tier]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns usage aggregated across tiers.
func (t *UsageTracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// Cost returns the spend for the recorded traffic as routed.
func (t *UsageTracker) Cost() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total float64
	for tier, u := range t.totals {
		c, err := t.pricing.Cost(tier, u.OutputTokens)
		if err != nil {
			continue
		}
		total += c
	}
	return total
}

// PremiumCost returns what the recorded traffic would have cost had every
// request gone to the premium tier.
func (t *UsageTracker) PremiumCost() float64 {
	total := t.TotalUsage()
	c, err := t.pricing.Cost(TierPremium, total.OutputTokens)
	if err != nil {
		return 0
	}
	return c
}

// Reset clears all tracked usage.
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[Tier]Usage)
}
