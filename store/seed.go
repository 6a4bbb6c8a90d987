package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed inserts the demo catalog plus enough synthetic observations that
// fv_product_context has a non-empty window for every product. Idempotent:
// rows keyed on their natural unique columns are inserted once.
func Seed(db *gorm.DB) error {
	products := []Product{
		{ProductID: 101, SKU: "HD-01", Name: "HyperDrone X1", Description: "A high-speed racing drone.", Category: "Drones", BasePrice: 249.99, Cost: 150.00},
		{ProductID: 102, SKU: "CAM-4K", Name: "ActionCam 4K", Description: "A rugged 4K action camera.", Category: "Cameras", BasePrice: 199.99, Cost: 120.00},
		{ProductID: 103, SKU: "VR-2025", Name: "VirtuReal Headset", Description: "An immersive VR headset.", Category: "VR", BasePrice: 399.99, Cost: 250.00},
	}
	competitors := []Competitor{
		{CompetitorID: 1, Name: "CompetitorA", WebsiteURL: "https://www.competitorA.com"},
		{CompetitorID: 2, Name: "CompetitorB", WebsiteURL: "https://www.competitorB.com"},
		{CompetitorID: 3, Name: "CompetitorC", WebsiteURL: "https://www.competitorC.com"},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&competitors).Error; err != nil {
		return fmt.Errorf("seeding competitors: %w", err)
	}

	var observations int64
	if err := db.Model(&CompetitorPrice{}).Count(&observations).Error; err != nil {
		return err
	}
	if observations > 0 {
		return nil
	}

	now := time.Now()
	// price offsets per competitor, sentiment and daily orders per product
	offsets := []float64{-0.02, 0.01, 0.04}
	sentiments := map[int64]float64{101: 0.8, 102: 0.9, 103: 0.7}
	dailyOrders := map[int64]int{101: 110, 102: 80, 103: 60}

	for _, p := range products {
		for day := 0; day < 7; day++ {
			observedAt := now.AddDate(0, 0, -day)
			for i, c := range competitors {
				price := CompetitorPrice{
					ProductID:    p.ProductID,
					CompetitorID: c.CompetitorID,
					Price:        p.BasePrice * (1 + offsets[i]),
					InStock:      true,
					ObservedAt:   observedAt,
				}
				if err := db.Create(&price).Error; err != nil {
					return fmt.Errorf("seeding competitor prices: %w", err)
				}
			}
		}
		for day := 0; day < 30; day += 3 {
			review := Review{
				ProductID:      p.ProductID,
				Source:         "demo",
				ReviewText:     "seeded review",
				Rating:         4,
				SentimentLabel: "positive",
				SentimentScore: sentiments[p.ProductID],
				ReviewedAt:     now.AddDate(0, 0, -day),
			}
			if err := db.Create(&review).Error; err != nil {
				return fmt.Errorf("seeding reviews: %w", err)
			}
		}
		for day := 0; day < 14; day++ {
			orders := dailyOrders[p.ProductID]
			kpi := ProductDailyKpi{
				ProductID:      p.ProductID,
				KpiDate:        now.AddDate(0, 0, -day),
				Revenue:        p.BasePrice * float64(orders),
				Orders:         orders,
				ConversionRate: 0.03,
				AveragePrice:   p.BasePrice,
			}
			if err := db.Create(&kpi).Error; err != nil {
				return fmt.Errorf("seeding KPIs: %w", err)
			}
		}
	}
	return nil
}
