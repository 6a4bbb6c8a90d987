package types

import (
	"fmt"
	"math"
)

// Bounds of the price-change action space. Actions are fractional
// price changes relative to the base price.
const (
	ActionLow  = -0.3
	ActionHigh = 0.3
)

// ProductContext is one row of the externally refreshed feature snapshot
// (fv_product_context in the database). Immutable within one
// training/evaluation pass.
type ProductContext struct {
	ProductID            int64   `json:"product_id" gorm:"column:product_id"`
	BasePrice            float64 `json:"base_price" gorm:"column:base_price"`
	Cost                 float64 `json:"cost" gorm:"column:cost"`
	AvgCompetitorPrice7d float64 `json:"avg_competitor_price_7d" gorm:"column:avg_competitor_price_7d"`
	AvgSentiment30d      float64 `json:"avg_sentiment_30d" gorm:"column:avg_sentiment_30d"`
	AvgOrders14d         float64 `json:"avg_orders_14d" gorm:"column:avg_orders_14d"`
}

// Observation is the normalized view of a product that policies observe.
type Observation struct {
	AvgCompetitorPrice7d float64 `json:"avg_competitor_price_7d"`
	AvgSentiment30d      float64 `json:"avg_sentiment_30d"`
	AvgOrders14d         float64 `json:"avg_orders_14d"`
	CurrentPriceRatio    float64 `json:"current_price_ratio"`
}

// Hash buckets the observation into a coarse state key. Tabular policies
// index their value tables by this key. Should be deterministic.
func (o Observation) Hash() string {
	return fmt.Sprintf("(%d, %d, %d, %d)",
		bucket(o.AvgCompetitorPrice7d/100, 0.25),
		bucket(o.AvgSentiment30d, 0.2),
		bucket(o.AvgOrders14d/100, 0.25),
		bucket(o.CurrentPriceRatio, 0.05),
	)
}

// bucket floors rather than truncates, so negative values get the same
// cell width as positive ones.
func bucket(v, width float64) int {
	if width <= 0 {
		return 0
	}
	return int(math.Floor(v / width))
}

// ValidAction reports whether the fractional price change is within the
// declared action space. The environment does not clamp; out-of-range
// values are a caller error.
func ValidAction(action float64) bool {
	return action >= ActionLow && action <= ActionHigh
}

// ContextProvider supplies the tabular feature set the environment
// iterates over, one row per product. Implementations return a read-only
// snapshot; refreshing it between passes is the caller's concern.
type ContextProvider interface {
	ProductContexts() ([]ProductContext, error)
	ProductContext(productID int64) (ProductContext, error)
}
