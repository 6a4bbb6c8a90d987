package rl

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/types"
	"go.uber.org/zap"
)

// TrainerConfig wires a trainable policy to an environment and the stores
// the finished run reports to.
type TrainerConfig struct {
	Timesteps int
	LogEvery  int

	Policy      types.TrainablePolicy
	Environment *pricing.Environment
	Artifacts   types.ArtifactStore
	Registry    types.PolicyRegistry

	// ModelDir prefixes the storage path of the saved artifact.
	ModelDir string
	Logger   *zap.Logger
}

// Trainer drives reset/step cycles to update a policy, saves the trained
// artifact and registers it. Registration only ever happens after a
// successful save, so the registry never references a missing artifact.
type Trainer struct {
	config TrainerConfig
	runID  string
}

func NewTrainer(config TrainerConfig) (*Trainer, error) {
	if config.Policy == nil {
		return nil, types.Configuration("trainer needs a policy")
	}
	if config.Environment == nil {
		return nil, types.Configuration("trainer needs an environment")
	}
	if config.Artifacts == nil {
		return nil, types.Configuration("trainer needs an artifact store")
	}
	if config.Registry == nil {
		return nil, types.Configuration("trainer needs a policy registry")
	}
	if config.Timesteps <= 0 {
		config.Timesteps = 20000
	}
	if config.LogEvery <= 0 {
		config.LogEvery = 1000
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Trainer{
		config: config,
		runID:  uuid.NewString(),
	}, nil
}

// Run trains for the configured number of timesteps and returns the
// registered policy record.
func (t *Trainer) Run(ctx context.Context) (*types.PolicyRecord, error) {
	if err := CheckEnvironment(t.config.Environment); err != nil {
		return nil, err
	}

	log := t.config.Logger.With(
		zap.String("run_id", t.runID),
		zap.String("algorithm", t.config.Policy.Algorithm()),
	)
	log.Info("starting training",
		zap.Int("timesteps", t.config.Timesteps),
		zap.Int("products", t.config.Environment.Len()),
	)

	env := t.config.Environment
	policy := t.config.Policy
	windowProfit := float64(0)
	start := time.Now()

	for step := 0; step < t.config.Timesteps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		obs, err := env.Reset()
		if err != nil {
			return nil, err
		}
		action := policy.Explore(obs)
		_, reward, _, _, _, err := env.Step(action)
		if err != nil {
			return nil, err
		}
		policy.Update(obs, action, reward)

		windowProfit += reward
		if (step+1)%t.config.LogEvery == 0 {
			log.Info("training progress",
				zap.Int("timestep", step+1),
				zap.Float64("mean_profit", windowProfit/float64(t.config.LogEvery)),
			)
			windowProfit = 0
		}
	}
	log.Info("training complete", zap.Duration("elapsed", time.Since(start)))

	return t.saveAndRegister(policy, log)
}

// saveAndRegister persists the artifact first and registers it second.
// A failed save aborts before registration - no orphan registry rows.
// The run id is folded into the name so that runs started within the same
// second still satisfy the unique index on policy_name.
func (t *Trainer) saveAndRegister(policy types.TrainablePolicy, log *zap.Logger) (*types.PolicyRecord, error) {
	name := fmt.Sprintf("%s_%s_%s", policy.Algorithm(), time.Now().Format("20060102-150405"), t.runID[:8])
	storagePath := path.Join(t.config.ModelDir, name+".json")

	data, err := policy.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("serializing policy: %w", err)
	}
	if err := t.config.Artifacts.Save(storagePath, data); err != nil {
		return nil, fmt.Errorf("saving policy artifact: %w", err)
	}
	log.Info("policy artifact saved", zap.String("path", storagePath))

	rec := &types.PolicyRecord{
		PolicyName:      name,
		Algorithm:       policy.Algorithm(),
		Hyperparameters: policy.Hyperparameters(),
		StoragePath:     storagePath,
		IsActive:        false,
	}
	if err := t.config.Registry.Register(rec); err != nil {
		return nil, fmt.Errorf("registering policy: %w", err)
	}
	log.Info("policy registered",
		zap.Int64("policy_id", rec.PolicyID),
		zap.String("policy_name", rec.PolicyName),
	)
	return rec, nil
}
