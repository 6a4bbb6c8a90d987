package policies

import (
	"math"

	"github.com/zeu5/pricing-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

const AlgorithmSoftMax = "softmax"

// SoftMaxPolicy is a tabular bandit policy over the discretized action
// grid. Exploration samples actions with probability proportional to
// exp(Q/temperature); the greedy action is the arg-max of the row.
type SoftMaxPolicy struct {
	table       *qTable
	grid        []float64
	alpha       float64
	temperature float64
	rewardScale float64
	rand        rand.Source
}

var _ types.TrainablePolicy = &SoftMaxPolicy{}

func NewSoftMaxPolicy(alpha, temperature, rewardScale float64, src rand.Source) *SoftMaxPolicy {
	grid := ActionGrid()
	return &SoftMaxPolicy{
		table:       newQTable(len(grid)),
		grid:        grid,
		alpha:       alpha,
		temperature: temperature,
		rewardScale: rewardScale,
		rand:        src,
	}
}

func (s *SoftMaxPolicy) Algorithm() string {
	return AlgorithmSoftMax
}

func (s *SoftMaxPolicy) Hyperparameters() map[string]any {
	return map[string]any{
		"alpha":        s.alpha,
		"temperature":  s.temperature,
		"reward_scale": s.rewardScale,
		"actions":      len(s.grid),
	}
}

// Action returns the greedy grid action. Unseen states keep the price
// unchanged.
func (s *SoftMaxPolicy) Action(obs types.Observation) float64 {
	row, ok := s.table.Peek(obs.Hash())
	if !ok {
		return 0
	}
	return s.grid[argMax(row)]
}

// Confidence is the softmax probability mass of the greedy action. Unseen
// states degrade to the uniform 1/len(grid).
func (s *SoftMaxPolicy) Confidence(obs types.Observation) float64 {
	row, ok := s.table.Peek(obs.Hash())
	if !ok {
		return 1.0 / float64(len(s.grid))
	}
	weights := s.weights(row)
	return weights[argMax(row)]
}

// Explore samples an action from the softmax distribution over the row.
func (s *SoftMaxPolicy) Explore(obs types.Observation) float64 {
	row := s.table.Row(obs.Hash())
	i, ok := sampleuv.NewWeighted(s.weights(row), s.rand).Take()
	if !ok {
		return s.grid[argMax(row)]
	}
	return s.grid[i]
}

// Update folds the scaled reward into the value of the taken action.
// Single-step episodes make this a plain bandit update, no bootstrapping.
func (s *SoftMaxPolicy) Update(obs types.Observation, action float64, reward float64) {
	row := s.table.Row(obs.Hash())
	i := nearestAction(s.grid, action)
	row[i] = (1-s.alpha)*row[i] + s.alpha*(reward/s.rewardScale)
}

func (s *SoftMaxPolicy) weights(row []float64) []float64 {
	// subtract the max before exponentiating to keep exp in range
	max := row[argMax(row)]
	sum := float64(0)
	weights := make([]float64, len(row))
	for i, val := range row {
		exp := math.Exp((val - max) / s.temperature)
		weights[i] = exp
		sum += exp
	}
	for i := range weights {
		weights[i] = weights[i] / sum
	}
	return weights
}
