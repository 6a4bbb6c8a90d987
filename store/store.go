package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fv_product_context mirrors the materialized feature view of the original
// warehouse. Sqlite has no materialized views, so this is a plain view;
// the snapshot semantics come from the provider reading it into memory
// once per pass.
const contextViewSQL = `
CREATE VIEW IF NOT EXISTS fv_product_context AS
SELECT p.product_id                                             AS product_id,
       p.base_price                                             AS base_price,
       p.cost                                                   AS cost,
       COALESCE((SELECT AVG(cp.price)
                   FROM competitor_prices cp
                  WHERE cp.product_id = p.product_id
                    AND cp.observed_at >= datetime('now', '-7 day')),
                p.base_price)                                   AS avg_competitor_price_7d,
       COALESCE((SELECT AVG(r.sentiment_score)
                   FROM reviews r
                  WHERE r.product_id = p.product_id
                    AND r.reviewed_at >= datetime('now', '-30 day')),
                0)                                              AS avg_sentiment_30d,
       COALESCE((SELECT AVG(k.orders)
                   FROM product_daily_kpi k
                  WHERE k.product_id = p.product_id
                    AND k.kpi_date >= date('now', '-14 day')),
                0)                                              AS avg_orders_14d
  FROM products p`

// Open opens (or creates) the engine database and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&Product{},
		&Competitor{},
		&CompetitorPrice{},
		&Review{},
		&ProductDailyKpi{},
		&RLPolicy{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	if err := db.Exec(contextViewSQL).Error; err != nil {
		return nil, fmt.Errorf("creating feature view: %w", err)
	}
	return db, nil
}
