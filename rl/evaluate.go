package rl

import (
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/types"
	"golang.org/x/exp/slices"
)

// ProductResult is one evaluated product: the policy's deterministic
// action and the simulated outcome at the resulting price.
type ProductResult struct {
	ProductID int64   `json:"product_id"`
	Action    float64 `json:"action"`
	Price     float64 `json:"predicted_price"`
	Orders    int     `json:"predicted_orders"`
	Revenue   float64 `json:"predicted_revenue"`
	Profit    float64 `json:"predicted_profit"`
}

// Report aggregates one evaluation pass over a context table.
type Report struct {
	Results     []ProductResult
	MeanProfit  float64
	MeanRevenue float64
}

// Evaluate runs the policy once over every product of the environment's
// snapshot. Outcomes are recomputed through the demand model directly
// rather than through Step, since a step would advance the product cursor;
// only Reset moves it. The policy is queried read-only and never updated.
func Evaluate(env *pricing.Environment, policy types.Policy) (*Report, error) {
	n := env.Len()
	if n == 0 {
		return nil, types.Configuration("context table is empty, nothing to evaluate")
	}
	report := &Report{Results: make([]ProductResult, 0, n)}

	for i := 0; i < n; i++ {
		obs, err := env.Reset()
		if err != nil {
			return nil, err
		}
		action := policy.Action(obs)
		if !types.ValidAction(action) {
			return nil, types.Usage("policy emitted action %.4f outside the declared bounds", action)
		}

		row := env.Current()
		price := row.BasePrice * (1 + action)
		orders := env.Demand().Orders(price, row.BasePrice)
		revenue := price * float64(orders)
		profit := revenue - row.Cost*float64(orders)

		report.Results = append(report.Results, ProductResult{
			ProductID: row.ProductID,
			Action:    action,
			Price:     price,
			Orders:    orders,
			Revenue:   revenue,
			Profit:    profit,
		})
		report.MeanProfit += profit
		report.MeanRevenue += revenue
	}

	report.MeanProfit /= float64(n)
	report.MeanRevenue /= float64(n)
	slices.SortFunc(report.Results, func(a, b ProductResult) int {
		switch {
		case a.ProductID < b.ProductID:
			return -1
		case a.ProductID > b.ProductID:
			return 1
		}
		return 0
	})
	return report, nil
}
