package rl

import (
	"fmt"
	"math"

	"github.com/zeu5/pricing-rl/pricing"
)

// CheckEnvironment validates the environment's observation/action/reward
// contract before a training run: reset yields a finite observation with a
// positive price ratio, a zero action keeps the price at the base price and
// every step terminates immediately. Fail-fast sanity check only; the
// trained artifact never depends on it.
func CheckEnvironment(env *pricing.Environment) error {
	obs, err := env.Reset()
	if err != nil {
		return fmt.Errorf("env check: reset failed: %w", err)
	}
	if obs.CurrentPriceRatio <= 0 {
		return fmt.Errorf("env check: reset observation has non-positive price ratio %f", obs.CurrentPriceRatio)
	}
	for name, v := range map[string]float64{
		"avg_competitor_price_7d": obs.AvgCompetitorPrice7d,
		"avg_sentiment_30d":       obs.AvgSentiment30d,
		"avg_orders_14d":          obs.AvgOrders14d,
		"current_price_ratio":     obs.CurrentPriceRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("env check: observation field %s is not finite", name)
		}
	}

	basePrice := env.Current().BasePrice
	_, reward, terminated, truncated, info, err := env.Step(0)
	if err != nil {
		return fmt.Errorf("env check: zero-action step failed: %w", err)
	}
	if info.Price != basePrice {
		return fmt.Errorf("env check: zero action moved the price from %f to %f", basePrice, info.Price)
	}
	if !terminated || truncated {
		return fmt.Errorf("env check: expected terminated=true truncated=false, got %v/%v", terminated, truncated)
	}
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return fmt.Errorf("env check: reward is not finite")
	}
	return nil
}
