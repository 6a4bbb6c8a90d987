package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zeu5/pricing-rl/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Registry is the rl_policies-backed policy registry.
type Registry struct {
	db *gorm.DB
}

var _ types.PolicyRegistry = &Registry{}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Register inserts the record with is_active forced to false. Trained
// policies never auto-promote.
func (r *Registry) Register(rec *types.PolicyRecord) error {
	params, err := json.Marshal(rec.Hyperparameters)
	if err != nil {
		return types.Configuration("marshalling hyperparameters: %v", err)
	}
	row := RLPolicy{
		PolicyName:      rec.PolicyName,
		Algorithm:       rec.Algorithm,
		Hyperparameters: datatypes.JSON(params),
		StoragePath:     rec.StoragePath,
		IsActive:        false,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("inserting policy record: %w", err)
	}
	rec.PolicyID = row.PolicyID
	rec.IsActive = false
	rec.CreatedAt = row.CreatedAt
	return nil
}

// Active returns the single active policy record, newest first if the
// at-most-one invariant was ever violated out of band.
func (r *Registry) Active() (types.PolicyRecord, error) {
	var row RLPolicy
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.PolicyRecord{}, types.ErrPolicyUnavailable
	}
	if err != nil {
		return types.PolicyRecord{}, err
	}
	return toRecord(row)
}

// Activate promotes one policy and demotes all others in one transaction.
func (r *Registry) Activate(policyID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row RLPolicy
		if err := tx.First(&row, "policy_id = ?", policyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&RLPolicy{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&RLPolicy{}).Where("policy_id = ?", policyID).
			Update("is_active", true).Error
	})
}

// List returns every registered policy, newest first.
func (r *Registry) List() ([]types.PolicyRecord, error) {
	var rows []RLPolicy
	if err := r.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	recs := make([]types.PolicyRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func toRecord(row RLPolicy) (types.PolicyRecord, error) {
	rec := types.PolicyRecord{
		PolicyID:    row.PolicyID,
		PolicyName:  row.PolicyName,
		Algorithm:   row.Algorithm,
		StoragePath: row.StoragePath,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
	if len(row.Hyperparameters) > 0 {
		if err := json.Unmarshal(row.Hyperparameters, &rec.Hyperparameters); err != nil {
			return types.PolicyRecord{}, types.Configuration("malformed hyperparameters for policy %d: %v", row.PolicyID, err)
		}
	}
	return rec, nil
}
