package store

import (
	"errors"

	"github.com/zeu5/pricing-rl/types"
	"gorm.io/gorm"
)

// ContextStore reads the fv_product_context view. One call returns one
// snapshot; the view itself is refreshed by the external ETL process.
type ContextStore struct {
	db *gorm.DB
}

var _ types.ContextProvider = &ContextStore{}

func NewContextStore(db *gorm.DB) *ContextStore {
	return &ContextStore{db: db}
}

// ProductContexts returns every row of the feature view. An empty result
// is not an error here; the environment reports the configuration error
// when it cannot select a product.
func (s *ContextStore) ProductContexts() ([]types.ProductContext, error) {
	rows := make([]types.ProductContext, 0)
	if err := s.db.Table("fv_product_context").Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductContext returns the feature row of a single product, or
// types.ErrNotFound.
func (s *ContextStore) ProductContext(productID int64) (types.ProductContext, error) {
	var row types.ProductContext
	err := s.db.Table("fv_product_context").Where("product_id = ?", productID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ProductContext{}, types.ErrNotFound
	}
	if err != nil {
		return types.ProductContext{}, err
	}
	return row, nil
}
