package types

import "time"

// Policy maps an observation to a fractional price change in
// [ActionLow, ActionHigh]. Trained by a driver, consumed read-only by the
// evaluation loop and the recommendation service.
type Policy interface {
	// Action returns the deterministic action for the observation.
	Action(obs Observation) float64
	// Confidence is the policy's own certainty estimate for the action it
	// would pick at this observation, in (0, 1]. Informational only.
	Confidence(obs Observation) float64
}

// TrainablePolicy additionally supports the training loop: stochastic
// exploration, single-step updates and serialization for the artifact store.
type TrainablePolicy interface {
	Policy

	// Algorithm identifier recorded in the policy registry.
	Algorithm() string
	// Hyperparameters recorded alongside the trained artifact.
	Hyperparameters() map[string]any
	// Explore samples a (possibly non-greedy) action during training.
	Explore(obs Observation) float64
	// Update folds one transition into the policy's parameters.
	Update(obs Observation, action float64, reward float64)
	// MarshalBinary serializes the trained parameters.
	MarshalBinary() ([]byte, error)
}

// PolicyRecord is a row of the rl_policies registry table.
type PolicyRecord struct {
	PolicyID        int64
	PolicyName      string
	Algorithm       string
	Hyperparameters map[string]any
	StoragePath     string
	IsActive        bool
	CreatedAt       time.Time
}

// PolicyRegistry persists trained policy metadata. At most one record is
// active system-wide; activation is an explicit operation separate from
// registration.
type PolicyRegistry interface {
	// Register inserts a new record. Newly trained policies never
	// auto-promote, so IsActive is stored as false.
	Register(rec *PolicyRecord) error
	// Active returns the single active record, or ErrPolicyUnavailable.
	Active() (PolicyRecord, error)
	// Activate promotes one record and demotes every other.
	Activate(policyID int64) error
	// List returns all records, newest first.
	List() ([]PolicyRecord, error)
}

// ArtifactStore persists opaque policy blobs addressed by a storage path.
type ArtifactStore interface {
	Save(path string, data []byte) error
	Load(path string) ([]byte, error)
}

// Constraints are post-hoc clamps applied to a recommended price, never an
// input to the policy itself.
type Constraints struct {
	// MinMargin raises the price until (price-cost)/price >= MinMargin.
	MinMargin float64 `json:"min_margin,omitempty"`
	// MaxPrice caps the price before the margin floor is applied. Zero
	// means no cap.
	MaxPrice float64 `json:"max_price,omitempty"`
}

// Recommendation is the ephemeral output of the recommendation service.
type Recommendation struct {
	ProductID        int64   `json:"product_id"`
	RecommendedPrice float64 `json:"recommended_price"`
	PolicyID         int64   `json:"policy_id"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// WhatIfPrediction is the counterfactual outcome for a hypothetical price,
// independent of any policy.
type WhatIfPrediction struct {
	Orders int `json:"orders"`
	// Revenue at the hypothetical price, floored at 0 for reporting.
	Revenue float64 `json:"revenue"`
	// ProfitMargin is (revenue - cost*orders)/revenue, 0 when revenue <= 0.
	ProfitMargin float64 `json:"profit_margin"`
	// CustomerSentimentImpact is a placeholder heuristic: a small signed
	// constant whose sign follows the direction of the price change. Not a
	// trained effect.
	CustomerSentimentImpact float64 `json:"customer_sentiment_impact"`
}
