package policies

import (
	"github.com/zeu5/pricing-rl/types"
	"golang.org/x/exp/rand"
)

const AlgorithmEGreedy = "egreedy"

// EGreedyPolicy shares the tabular core of SoftMaxPolicy but explores by
// taking a uniformly random grid action with probability epsilon.
type EGreedyPolicy struct {
	table       *qTable
	grid        []float64
	alpha       float64
	epsilon     float64
	rewardScale float64
	rand        *rand.Rand
}

var _ types.TrainablePolicy = &EGreedyPolicy{}

func NewEGreedyPolicy(alpha, epsilon, rewardScale float64, src rand.Source) *EGreedyPolicy {
	grid := ActionGrid()
	return &EGreedyPolicy{
		table:       newQTable(len(grid)),
		grid:        grid,
		alpha:       alpha,
		epsilon:     epsilon,
		rewardScale: rewardScale,
		rand:        rand.New(src),
	}
}

func (e *EGreedyPolicy) Algorithm() string {
	return AlgorithmEGreedy
}

func (e *EGreedyPolicy) Hyperparameters() map[string]any {
	return map[string]any{
		"alpha":        e.alpha,
		"epsilon":      e.epsilon,
		"reward_scale": e.rewardScale,
		"actions":      len(e.grid),
	}
}

func (e *EGreedyPolicy) Action(obs types.Observation) float64 {
	row, ok := e.table.Peek(obs.Hash())
	if !ok {
		return 0
	}
	return e.grid[argMax(row)]
}

// Confidence reflects how much better the greedy action is than the row
// average, squashed into (0, 1].
func (e *EGreedyPolicy) Confidence(obs types.Observation) float64 {
	row, ok := e.table.Peek(obs.Hash())
	if !ok {
		return 1.0 / float64(len(e.grid))
	}
	best := row[argMax(row)]
	mean := float64(0)
	for _, v := range row {
		mean += v
	}
	mean /= float64(len(row))
	gap := best - mean
	if gap < 0 {
		gap = 0
	}
	conf := gap/(gap+1) + 1.0/float64(len(e.grid))
	if conf > 1 {
		conf = 1
	}
	return conf
}

func (e *EGreedyPolicy) Explore(obs types.Observation) float64 {
	row := e.table.Row(obs.Hash())
	if e.rand.Float64() < e.epsilon {
		return e.grid[e.rand.Intn(len(e.grid))]
	}
	return e.grid[argMax(row)]
}

func (e *EGreedyPolicy) Update(obs types.Observation, action float64, reward float64) {
	row := e.table.Row(obs.Hash())
	i := nearestAction(e.grid, action)
	row[i] = (1-e.alpha)*row[i] + e.alpha*(reward/e.rewardScale)
}
