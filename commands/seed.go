package commands

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/store"
	"go.uber.org/zap"
)

func SeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Bootstrap the demo catalog and synthetic observations",
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
			if err := store.Seed(db); err != nil {
				return err
			}
			logger.Info("demo data seeded", zap.String("database", cfg.Database.Path))
			return nil
		},
	}
}
