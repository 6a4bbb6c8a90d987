package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/config"
	"github.com/zeu5/pricing-rl/pricing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/rand"
)

var configPath string

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "pricing-rl",
		Short:         "Dynamic pricing decision engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the yaml config file")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(EvaluateCommand())
	rootCommand.AddCommand(ServeCommand())
	rootCommand.AddCommand(SeedCommand())
	rootCommand.AddCommand(PoliciesCommand())
	rootCommand.AddCommand(ActivateCommand())
	return rootCommand
}

// setup loads the config file referenced by the persistent flag and builds
// the logger every subcommand shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newDemandModel builds the configured demand model with its own random
// stream. seed 0 means seed from the clock.
func newDemandModel(cfg *config.Config, seed uint64) *pricing.DemandModel {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	demand := pricing.NewDemandModel(rand.NewSource(seed))
	if cfg.Demand.BaseDemand > 0 {
		demand.BaseDemand = cfg.Demand.BaseDemand
	}
	if cfg.Demand.Elasticity < 0 {
		demand.Elasticity = cfg.Demand.Elasticity
	}
	return demand
}
