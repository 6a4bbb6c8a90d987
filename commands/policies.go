package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/pricing-rl/store"
	"go.uber.org/zap"
)

func PoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List registered policies",
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
			recs, err := store.NewRegistry(db).List()
			if err != nil {
				return err
			}
			fmt.Printf("%10s %8s %30s %30s %s\n", "policy_id", "active", "name", "created_at", "storage_path")
			for _, rec := range recs {
				fmt.Printf("%10d %8v %30s %30s %s\n",
					rec.PolicyID, rec.IsActive, rec.PolicyName,
					rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.StoragePath)
			}
			return nil
		},
	}
}

// ActivateCommand is the explicit promotion step: trained policies are
// registered inactive and only start serving recommendations after this.
func ActivateCommand() *cobra.Command {
	var policyID int64
	command := &cobra.Command{
		Use:   "activate",
		Short: "Promote a registered policy to serve live recommendations",
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
			if err := store.NewRegistry(db).Activate(policyID); err != nil {
				return err
			}
			logger.Info("policy activated", zap.Int64("policy_id", policyID))
			return nil
		},
	}
	command.Flags().Int64Var(&policyID, "policy-id", 0, "Policy to activate")
	command.MarkFlagRequired("policy-id")
	return command
}
