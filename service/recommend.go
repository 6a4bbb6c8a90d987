package service

import (
	"context"
	"fmt"
	"math"

	"github.com/zeu5/pricing-rl/policies"
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/types"
	"go.uber.org/zap"
)

// RecommendationWriter persists served recommendations. Best effort; a
// write failure never fails the request.
type RecommendationWriter interface {
	Append(rec types.Recommendation, constraints types.Constraints) error
}

type Config struct {
	Contexts  types.ContextProvider
	Registry  types.PolicyRegistry
	Artifacts types.ArtifactStore
	Demand    *pricing.DemandModel

	Cache  Cache                // optional
	Writer RecommendationWriter // optional
	Logger *zap.Logger
}

// Service answers price recommendations and what-if predictions. One
// registry read plus one demand evaluation per call, no internal locking.
type Service struct {
	contexts  types.ContextProvider
	registry  types.PolicyRegistry
	artifacts types.ArtifactStore
	demand    *pricing.DemandModel
	cache     Cache
	writer    RecommendationWriter
	logger    *zap.Logger
}

func New(cfg Config) (*Service, error) {
	if cfg.Contexts == nil {
		return nil, types.Configuration("service needs a context provider")
	}
	if cfg.Registry == nil {
		return nil, types.Configuration("service needs a policy registry")
	}
	if cfg.Artifacts == nil {
		return nil, types.Configuration("service needs an artifact store")
	}
	if cfg.Demand == nil {
		return nil, types.Configuration("service needs a demand model")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		contexts:  cfg.Contexts,
		registry:  cfg.Registry,
		artifacts: cfg.Artifacts,
		demand:    cfg.Demand,
		cache:     cfg.Cache,
		writer:    cfg.Writer,
		logger:    cfg.Logger,
	}, nil
}

// Recommend maps a product and constraints to a concrete price using the
// active policy. Unknown product -> types.ErrNotFound; no active or
// loadable policy -> types.ErrPolicyUnavailable.
func (s *Service) Recommend(ctx context.Context, productID int64, constraints types.Constraints) (types.Recommendation, error) {
	if s.cache != nil {
		if rec, ok := s.cache.GetRecommendation(ctx, productID, constraints); ok {
			return rec, nil
		}
	}

	row, err := s.contexts.ProductContext(productID)
	if err != nil {
		return types.Recommendation{}, err
	}

	active, err := s.registry.Active()
	if err != nil {
		return types.Recommendation{}, err
	}
	data, err := s.artifacts.Load(active.StoragePath)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("%w: %v", types.ErrPolicyUnavailable, err)
	}
	policy, err := policies.Load(data)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("%w: %v", types.ErrPolicyUnavailable, err)
	}

	obs := types.Observation{
		AvgCompetitorPrice7d: row.AvgCompetitorPrice7d,
		AvgSentiment30d:      row.AvgSentiment30d,
		AvgOrders14d:         row.AvgOrders14d,
		CurrentPriceRatio:    1,
	}
	action := policy.Action(obs)
	price := row.BasePrice * (1 + action)
	price = applyConstraints(price, row.Cost, constraints)

	rec := types.Recommendation{
		ProductID:        productID,
		RecommendedPrice: math.Round(price*100) / 100,
		PolicyID:         active.PolicyID,
		ConfidenceScore:  policy.Confidence(obs),
	}

	if s.writer != nil {
		if err := s.writer.Append(rec, constraints); err != nil {
			s.logger.Warn("recommendation log write failed", zap.Error(err))
		}
	}
	if s.cache != nil {
		s.cache.SetRecommendation(ctx, productID, constraints, rec)
	}
	return rec, nil
}

// applyConstraints clamps the policy's price after the fact. Constraints
// never feed into the policy. The margin floor is applied last, so a
// feasible min_margin always holds in the returned price.
func applyConstraints(price, cost float64, c types.Constraints) float64 {
	if c.MaxPrice > 0 && price > c.MaxPrice {
		price = c.MaxPrice
	}
	if c.MinMargin > 0 && c.MinMargin < 1 {
		if margin(price, cost) < c.MinMargin {
			price = cost / (1 - c.MinMargin)
		}
	}
	return price
}

func margin(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price
}
