package policies

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeu5/pricing-rl/types"
	"golang.org/x/exp/rand"
)

// artifact is the serialized form stored in the policy artifact store.
type artifact struct {
	Algorithm string               `json:"algorithm"`
	Grid      []float64            `json:"actions"`
	Params    map[string]float64   `json:"params"`
	Table     map[string][]float64 `json:"table"`
}

func (s *SoftMaxPolicy) MarshalBinary() ([]byte, error) {
	return json.Marshal(artifact{
		Algorithm: AlgorithmSoftMax,
		Grid:      s.grid,
		Params: map[string]float64{
			"alpha":        s.alpha,
			"temperature":  s.temperature,
			"reward_scale": s.rewardScale,
		},
		Table: s.table.values,
	})
}

func (e *EGreedyPolicy) MarshalBinary() ([]byte, error) {
	return json.Marshal(artifact{
		Algorithm: AlgorithmEGreedy,
		Grid:      e.grid,
		Params: map[string]float64{
			"alpha":        e.alpha,
			"epsilon":      e.epsilon,
			"reward_scale": e.rewardScale,
		},
		Table: e.table.values,
	})
}

// Params configures the built-in trainable policies. Zero values fall back
// to the defaults below.
type Params struct {
	Alpha       float64
	Epsilon     float64
	Temperature float64
	RewardScale float64
}

func (p Params) withDefaults() Params {
	if p.Alpha <= 0 {
		p.Alpha = 0.1
	}
	if p.Epsilon <= 0 {
		p.Epsilon = 0.1
	}
	if p.Temperature <= 0 {
		p.Temperature = 1.0
	}
	if p.RewardScale <= 0 {
		p.RewardScale = 1000
	}
	return p
}

// Algorithms lists the built-in trainable algorithm identifiers. The
// registry accepts other identifiers for externally trained policies.
func Algorithms() []string {
	return []string{AlgorithmSoftMax, AlgorithmEGreedy}
}

// New constructs a trainable policy for the algorithm identifier.
func New(algorithm string, params Params, src rand.Source) (types.TrainablePolicy, error) {
	params = params.withDefaults()
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	switch algorithm {
	case AlgorithmSoftMax:
		return NewSoftMaxPolicy(params.Alpha, params.Temperature, params.RewardScale, src), nil
	case AlgorithmEGreedy:
		return NewEGreedyPolicy(params.Alpha, params.Epsilon, params.RewardScale, src), nil
	}
	return nil, types.Configuration("unknown algorithm %q, expected one of %v", algorithm, Algorithms())
}

// Load reconstructs a policy from its serialized artifact bytes.
func Load(data []byte) (types.Policy, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding policy artifact: %w", err)
	}
	src := rand.NewSource(uint64(time.Now().UnixNano()))
	switch a.Algorithm {
	case AlgorithmSoftMax:
		p := NewSoftMaxPolicy(a.Params["alpha"], a.Params["temperature"], a.Params["reward_scale"], src)
		p.restore(a)
		return p, nil
	case AlgorithmEGreedy:
		p := NewEGreedyPolicy(a.Params["alpha"], a.Params["epsilon"], a.Params["reward_scale"], src)
		p.restore(a)
		return p, nil
	}
	return nil, fmt.Errorf("unknown policy algorithm %q in artifact", a.Algorithm)
}

func (s *SoftMaxPolicy) restore(a artifact) {
	if len(a.Grid) > 0 {
		s.grid = a.Grid
	}
	s.table = &qTable{values: a.Table, actions: len(s.grid)}
	if s.table.values == nil {
		s.table.values = make(map[string][]float64)
	}
	if s.temperature <= 0 {
		s.temperature = 1
	}
	if s.rewardScale <= 0 {
		s.rewardScale = 1000
	}
}

func (e *EGreedyPolicy) restore(a artifact) {
	if len(a.Grid) > 0 {
		e.grid = a.Grid
	}
	e.table = &qTable{values: a.Table, actions: len(e.grid)}
	if e.table.values == nil {
		e.table.values = make(map[string][]float64)
	}
	if e.rewardScale <= 0 {
		e.rewardScale = 1000
	}
}
