package service

import (
	"math"

	"github.com/zeu5/pricing-rl/types"
)

// WhatIf predicts orders, revenue and margin for a hypothetical price,
// independent of any policy. Unknown product -> types.ErrNotFound.
//
// The sentiment impact is a placeholder heuristic, not a trained effect:
// a fixed small penalty when the price rises above base, a fixed small
// lift otherwise.
func (s *Service) WhatIf(productID int64, hypotheticalPrice float64) (types.WhatIfPrediction, error) {
	row, err := s.contexts.ProductContext(productID)
	if err != nil {
		return types.WhatIfPrediction{}, err
	}

	orders := s.demand.Orders(hypotheticalPrice, row.BasePrice)
	if orders < 0 {
		orders = 0
	}
	revenue := hypotheticalPrice * float64(orders)

	profitMargin := float64(0)
	if revenue > 0 {
		totalCost := row.Cost * float64(orders)
		profitMargin = (revenue - totalCost) / revenue
	}

	sentimentImpact := 0.005
	if hypotheticalPrice-row.BasePrice > 0 {
		sentimentImpact = -0.01
	}

	if revenue < 0 {
		revenue = 0
	}
	return types.WhatIfPrediction{
		Orders:                  orders,
		Revenue:                 math.Round(revenue*100) / 100,
		ProfitMargin:            math.Round(profitMargin*10000) / 10000,
		CustomerSentimentImpact: sentimentImpact,
	}, nil
}
