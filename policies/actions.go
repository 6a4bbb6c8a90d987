package policies

import (
	"math"

	"github.com/zeu5/pricing-rl/types"
)

// The continuous action space is discretized into a fixed grid for the
// tabular policies. External policies may emit any value within the bounds;
// the grid is an implementation detail of the built-in trainers.
const actionGridStep = 0.05

// ActionGrid returns the discrete price-change actions the tabular policies
// choose from, spanning [ActionLow, ActionHigh] inclusive.
func ActionGrid() []float64 {
	n := int(math.Round((types.ActionHigh-types.ActionLow)/actionGridStep)) + 1
	grid := make([]float64, n)
	for i := 0; i < n; i++ {
		grid[i] = types.ActionLow + float64(i)*actionGridStep
	}
	return grid
}

// nearestAction maps a continuous action onto its grid index.
func nearestAction(grid []float64, action float64) int {
	best := 0
	bestDist := math.Abs(grid[0] - action)
	for i := 1; i < len(grid); i++ {
		if d := math.Abs(grid[i] - action); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
