package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/server"
	"github.com/zeu5/pricing-rl/service"
	"github.com/zeu5/pricing-rl/store"
	"go.uber.org/zap"
)

func ServeCommand() *cobra.Command {
	var addr string
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pricing recommendation API",
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
			recLog, err := store.OpenRecommendationLog(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer recLog.Close()

			var cache service.Cache
			if cfg.Cache.Addr != "" {
				cache = service.NewRedisCache(cfg.Cache.Addr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
				logger.Info("recommendation cache enabled", zap.String("addr", cfg.Cache.Addr))
			}

			registry := store.NewRegistry(db)
			svc, err := service.New(service.Config{
				Contexts:  store.NewContextStore(db),
				Registry:  registry,
				Artifacts: store.FileArtifactStore{},
				Demand:    newDemandModel(cfg, 0),
				Cache:     cache,
				Writer:    recLog,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			srv := server.New(svc, store.NewProductStore(db), registry, logger)
			return srv.Run(addr)
		},
	}
	command.Flags().StringVar(&addr, "addr", "", "Listen address (empty = config default)")
	return command
}
