package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/policies"
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/rl"
	"github.com/zeu5/pricing-rl/store"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

func TrainCommand() *cobra.Command {
	var (
		algo      string
		timesteps int
		seed      uint64
	)
	command := &cobra.Command{
		Use:   "train",
		Short: "Train a pricing policy against the simulated market",
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
			contexts := store.NewContextStore(db)
			env, err := pricing.NewEnvironment(contexts, newDemandModel(cfg, seed))
			if err != nil {
				return err
			}

			policySeed := seed
			if policySeed == 0 {
				policySeed = uint64(time.Now().UnixNano())
			}
			policy, err := policies.New(algo, policies.Params{
				Alpha:       cfg.Train.Alpha,
				Epsilon:     cfg.Train.Epsilon,
				Temperature: cfg.Train.Temperature,
				RewardScale: cfg.Train.RewardScale,
			}, rand.NewSource(policySeed+1))
			if err != nil {
				return err
			}

			if timesteps <= 0 {
				timesteps = cfg.Train.Timesteps
			}
			trainer, err := rl.NewTrainer(rl.TrainerConfig{
				Timesteps:   timesteps,
				LogEvery:    cfg.Train.LogEvery,
				Policy:      policy,
				Environment: env,
				Artifacts:   store.FileArtifactStore{},
				Registry:    store.NewRegistry(db),
				ModelDir:    cfg.Artifacts.Dir,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			rec, err := trainer.Run(ctx)
			if err != nil {
				return err
			}
			logger.Info("trained policy registered, promote it explicitly to serve it",
				zap.Int64("policy_id", rec.PolicyID),
				zap.String("policy_name", rec.PolicyName),
			)
			return nil
		},
	}
	command.Flags().StringVarP(&algo, "algo", "a", policies.AlgorithmSoftMax, "Training algorithm")
	command.Flags().IntVarP(&timesteps, "timesteps", "t", 0, "Total training timesteps (0 = config default)")
	command.Flags().Uint64Var(&seed, "seed", 0, "Random seed for the market simulation (0 = clock)")
	return command
}
