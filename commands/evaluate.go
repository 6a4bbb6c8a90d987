package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/policies"
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/rl"
	"github.com/zeu5/pricing-rl/store"
	"github.com/zeu5/pricing-rl/types"
	"go.uber.org/zap"
)

func EvaluateCommand() *cobra.Command {
	var (
		policyID int64
		baseline bool
		seed     uint64
		saveCSV  string
		savePlot string
	)
	command := &cobra.Command{
		Use:   "evaluate",
		Short: "Run a policy once over every product and report the predicted outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			env, err := pricing.NewEnvironment(store.NewContextStore(db), newDemandModel(cfg, seed))
			if err != nil {
				return err
			}

			policy, name, err := resolvePolicy(store.NewRegistry(db), policyID, baseline)
			if err != nil {
				return err
			}
			logger.Info("evaluating policy", zap.String("policy", name), zap.Int("products", env.Len()))

			report, err := rl.Evaluate(env, policy)
			if err != nil {
				return err
			}
			fmt.Println(report.String())

			if saveCSV != "" {
				if err := report.WriteCSV(saveCSV); err != nil {
					return err
				}
				logger.Info("evaluation results saved", zap.String("path", saveCSV))
			}
			if savePlot != "" {
				if err := report.SavePlot(savePlot); err != nil {
					return err
				}
				logger.Info("evaluation plot saved", zap.String("path", savePlot))
			}
			return nil
		},
	}
	command.Flags().Int64Var(&policyID, "policy-id", 0, "Registered policy to evaluate (0 = active policy)")
	command.Flags().BoolVar(&baseline, "baseline", false, "Evaluate the fixed-discount baseline rule instead of a trained policy")
	command.Flags().Uint64Var(&seed, "seed", 0, "Random seed for the market simulation (0 = clock)")
	command.Flags().StringVar(&saveCSV, "save-results", "", "Path for the per-product results CSV")
	command.Flags().StringVar(&savePlot, "save-plot", "", "Path for the profit/revenue png")
	return command
}

// resolvePolicy loads the requested policy artifact, the active one by
// default, or the baseline rule.
func resolvePolicy(registry types.PolicyRegistry, policyID int64, baseline bool) (types.Policy, string, error) {
	if baseline {
		return policies.NewBaselinePolicy(), "baseline", nil
	}

	var rec types.PolicyRecord
	if policyID == 0 {
		active, err := registry.Active()
		if err != nil {
			return nil, "", err
		}
		rec = active
	} else {
		recs, err := registry.List()
		if err != nil {
			return nil, "", err
		}
		found := false
		for _, r := range recs {
			if r.PolicyID == policyID {
				rec = r
				found = true
				break
			}
		}
		if !found {
			return nil, "", types.ErrNotFound
		}
	}

	data, err := store.FileArtifactStore{}.Load(rec.StoragePath)
	if err != nil {
		return nil, "", err
	}
	policy, err := policies.Load(data)
	if err != nil {
		return nil, "", err
	}
	return policy, rec.PolicyName, nil
}
