package policies

import (
	"github.com/zeu5/pricing-rl/types"
)

// BaselinePolicy is the deterministic pre-model rule: discount the base
// price by a fixed fraction regardless of the observation. Used as the
// comparison policy in offline evaluation runs.
type BaselinePolicy struct {
	Discount float64
}

var _ types.Policy = &BaselinePolicy{}

// NewBaselinePolicy returns the standard 10% discount rule.
func NewBaselinePolicy() *BaselinePolicy {
	return &BaselinePolicy{Discount: 0.1}
}

func (b *BaselinePolicy) Action(types.Observation) float64 {
	return -b.Discount
}

func (b *BaselinePolicy) Confidence(types.Observation) float64 {
	return 0.95
}
