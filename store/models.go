package store

import (
	"time"

	"gorm.io/datatypes"
)

// Product is the catalog row owned by the wider platform. The engine only
// reads base_price and cost; the rest is carried for the serving API.
type Product struct {
	ProductID   int64     `json:"product_id" gorm:"primaryKey;autoIncrement;column:product_id"`
	SKU         string    `json:"sku" gorm:"column:sku;uniqueIndex;size:50;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:100"`
	BasePrice   float64   `json:"base_price" gorm:"not null"`
	Cost        float64   `json:"cost" gorm:"not null"`
	CreatedAt   time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

type Competitor struct {
	CompetitorID int64     `json:"competitor_id" gorm:"primaryKey;autoIncrement;column:competitor_id"`
	Name         string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	WebsiteURL   string    `json:"website_url" gorm:"size:255"`
	CreatedAt    time.Time `json:"-" gorm:"autoCreateTime"`
}

func (Competitor) TableName() string { return "competitors" }

type CompetitorPrice struct {
	PriceID      int64     `json:"-" gorm:"primaryKey;autoIncrement;column:price_id"`
	ProductID    int64     `json:"product_id" gorm:"index;not null"`
	CompetitorID int64     `json:"competitor_id" gorm:"index;not null"`
	Price        float64   `json:"price" gorm:"not null"`
	InStock      bool      `json:"in_stock" gorm:"default:true"`
	ObservedAt   time.Time `json:"observed_at" gorm:"index;not null"`
}

func (CompetitorPrice) TableName() string { return "competitor_prices" }

type Review struct {
	ReviewID       int64     `json:"-" gorm:"primaryKey;autoIncrement;column:review_id"`
	ProductID      int64     `json:"product_id" gorm:"index;not null"`
	Source         string    `json:"source" gorm:"size:50"`
	ReviewText     string    `json:"review_text" gorm:"type:text"`
	Rating         int       `json:"rating"`
	SentimentLabel string    `json:"sentiment_label" gorm:"size:20"`
	SentimentScore float64   `json:"sentiment_score"`
	ReviewedAt     time.Time `json:"reviewed_at" gorm:"index;not null"`
	CreatedAt      time.Time `json:"-" gorm:"autoCreateTime"`
}

func (Review) TableName() string { return "reviews" }

type ProductDailyKpi struct {
	KpiID          int64     `json:"-" gorm:"primaryKey;autoIncrement;column:kpi_id"`
	ProductID      int64     `json:"product_id" gorm:"index;not null"`
	KpiDate        time.Time `json:"kpi_date" gorm:"index;not null"`
	Revenue        float64   `json:"revenue"`
	Orders         int       `json:"orders"`
	ConversionRate float64   `json:"conversion_rate"`
	AveragePrice   float64   `json:"average_price"`
}

func (ProductDailyKpi) TableName() string { return "product_daily_kpi" }

// RLPolicy is the registry row for a trained policy artifact.
type RLPolicy struct {
	PolicyID        int64          `json:"policy_id" gorm:"primaryKey;autoIncrement;column:policy_id"`
	PolicyName      string         `json:"policy_name" gorm:"size:100;uniqueIndex;not null"`
	Algorithm       string         `json:"algorithm" gorm:"size:50"`
	Hyperparameters datatypes.JSON `json:"hyperparameters"`
	StoragePath     string         `json:"storage_path" gorm:"size:255;not null"`
	IsActive        bool           `json:"is_active" gorm:"default:false;index"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (RLPolicy) TableName() string { return "rl_policies" }
