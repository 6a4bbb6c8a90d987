package pricing

import (
	"github.com/zeu5/pricing-rl/types"
)

// StepInfo carries the simulated market outcome of one step for
// observability.
type StepInfo struct {
	Price   float64 `json:"price"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Environment is a single-step episodic market simulation over a snapshot
// of product contexts. Reset selects the next product round-robin and
// re-initializes the price to its base price; Step applies one price change
// and terminates the episode. Every episode is exactly one step, matching
// the bandit-style formulation the policies are built around.
type Environment struct {
	rows   []types.ProductContext
	demand *DemandModel

	cursor       int
	currentPrice float64
	ready        bool
}

// NewEnvironment snapshots the provider's rows. The snapshot is immutable
// for the lifetime of the environment; refreshed data needs a new instance.
func NewEnvironment(provider types.ContextProvider, demand *DemandModel) (*Environment, error) {
	rows, err := provider.ProductContexts()
	if err != nil {
		return nil, err
	}
	return &Environment{
		rows:   rows,
		demand: demand,
		cursor: 0,
	}, nil
}

// NewEnvironmentFromRows builds an environment directly over rows.
func NewEnvironmentFromRows(rows []types.ProductContext, demand *DemandModel) *Environment {
	return &Environment{rows: rows, demand: demand}
}

// Reset advances the product cursor by one position (wrapping around), sets
// the current price to the selected product's base price and returns the
// observation. Must be called before the first Step.
func (e *Environment) Reset() (types.Observation, error) {
	if len(e.rows) == 0 {
		return types.Observation{}, types.Configuration("context table is empty, cannot select a product")
	}
	e.cursor = (e.cursor + 1) % len(e.rows)
	e.currentPrice = e.rows[e.cursor].BasePrice
	e.ready = true
	return e.observation(), nil
}

// Step applies the fractional price change, simulates demand at the new
// price and returns (observation, reward, terminated, truncated, info).
// terminated is unconditionally true; truncated is always false.
func (e *Environment) Step(action float64) (types.Observation, float64, bool, bool, StepInfo, error) {
	if !e.ready {
		return types.Observation{}, 0, false, false, StepInfo{}, types.Usage("step called before reset")
	}
	if !types.ValidAction(action) {
		return types.Observation{}, 0, false, false, StepInfo{}, types.Usage("action %.4f outside [%.1f, %.1f]", action, types.ActionLow, types.ActionHigh)
	}

	row := e.rows[e.cursor]
	e.currentPrice = row.BasePrice * (1 + action)

	orders := e.demand.Orders(e.currentPrice, row.BasePrice)
	revenue := e.currentPrice * float64(orders)
	totalCost := row.Cost * float64(orders)
	profit := revenue - totalCost

	e.ready = false
	info := StepInfo{
		Price:   e.currentPrice,
		Orders:  orders,
		Revenue: revenue,
		Profit:  profit,
	}
	return e.observation(), profit, true, false, info, nil
}

// Current returns the product context selected by the last Reset.
func (e *Environment) Current() types.ProductContext {
	return e.rows[e.cursor]
}

// Len returns the number of products in the snapshot.
func (e *Environment) Len() int {
	return len(e.rows)
}

// Demand exposes the environment's demand model, used by the evaluation
// driver to recompute outcomes without advancing the cursor.
func (e *Environment) Demand() *DemandModel {
	return e.demand
}

func (e *Environment) observation() types.Observation {
	row := e.rows[e.cursor]
	return types.Observation{
		AvgCompetitorPrice7d: row.AvgCompetitorPrice7d,
		AvgSentiment30d:      row.AvgSentiment30d,
		AvgOrders14d:         row.AvgOrders14d,
		CurrentPriceRatio:    e.currentPrice / row.BasePrice,
	}
}
