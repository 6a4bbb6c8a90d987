package store

import (
	"errors"
	"time"

	"github.com/zeu5/pricing-rl/types"
	"gorm.io/gorm"
)

// ProductStore serves the catalog reads of the HTTP layer.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ProductDetails is a product joined with its latest feature aggregates.
type ProductDetails struct {
	Product
	CompetitorPrices []ObservedCompetitorPrice `json:"competitor_prices"`
	SentimentScore30 float64                   `json:"sentiment_score_30d"`
	AvgOrders14d     float64                   `json:"avg_orders_14d"`
}

// ObservedCompetitorPrice is one observation joined with the competitor
// name.
type ObservedCompetitorPrice struct {
	CompetitorName string    `json:"competitor_name"`
	Price          float64   `json:"price"`
	ObservedAt     time.Time `json:"observed_at"`
}

func (s *ProductStore) List(skip, limit int) ([]Product, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var products []Product
	err := s.db.Order("product_id").Offset(skip).Limit(limit).Find(&products).Error
	return products, err
}

func (s *ProductStore) Details(productID int64) (*ProductDetails, error) {
	var product Product
	err := s.db.First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	details := &ProductDetails{Product: product}
	prices, err := s.CompetitorPrices(productID, 10)
	if err != nil {
		return nil, err
	}
	details.CompetitorPrices = prices

	var row types.ProductContext
	err = s.db.Table("fv_product_context").Where("product_id = ?", productID).Take(&row).Error
	if err == nil {
		details.SentimentScore30 = row.AvgSentiment30d
		details.AvgOrders14d = row.AvgOrders14d
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return details, nil
}

func (s *ProductStore) KPIs(productID int64, limit int) ([]ProductDailyKpi, error) {
	if limit <= 0 {
		limit = 100
	}
	var kpis []ProductDailyKpi
	err := s.db.Where("product_id = ?", productID).
		Order("kpi_date DESC").Limit(limit).Find(&kpis).Error
	return kpis, err
}

func (s *ProductStore) CompetitorPrices(productID int64, limit int) ([]ObservedCompetitorPrice, error) {
	if limit <= 0 {
		limit = 500
	}
	var prices []ObservedCompetitorPrice
	err := s.db.Table("competitor_prices").
		Select("competitors.name AS competitor_name, competitor_prices.price, competitor_prices.observed_at").
		Joins("JOIN competitors ON competitors.competitor_id = competitor_prices.competitor_id").
		Where("competitor_prices.product_id = ?", productID).
		Order("competitor_prices.observed_at DESC").
		Limit(limit).
		Scan(&prices).Error
	return prices, err
}
