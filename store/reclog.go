package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zeu5/pricing-rl/types"

	_ "modernc.org/sqlite"
)

// RecommendationLog is an append-only log of served recommendations,
// kept outside gorm on a plain database/sql handle.
type RecommendationLog struct {
	mu sync.Mutex
	db *sql.DB
}

// LoggedRecommendation is one row of the price_recommendations table.
type LoggedRecommendation struct {
	RecommendationID int64   `json:"recommendation_id"`
	ProductID        int64   `json:"product_id"`
	PolicyID         int64   `json:"policy_id"`
	RecommendedPrice float64 `json:"recommended_price"`
	Constraints      string  `json:"request_constraints"`
	CreatedAt        int64   `json:"created_at"`
}

const recLogSchema = `
CREATE TABLE IF NOT EXISTS price_recommendations (
	recommendation_id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id INTEGER NOT NULL,
	policy_id INTEGER,
	recommended_price REAL NOT NULL,
	request_constraints TEXT,
	created_at INTEGER NOT NULL
)`

func OpenRecommendationLog(path string) (*RecommendationLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening recommendation log %s: %w", path, err)
	}
	if _, err := db.Exec(recLogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating price_recommendations: %w", err)
	}
	return &RecommendationLog{db: db}, nil
}

// Append persists one served recommendation together with the constraints
// of the request.
func (l *RecommendationLog) Append(rec types.Recommendation, constraints types.Constraints) error {
	raw, err := json.Marshal(constraints)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.db.Exec(
		`INSERT INTO price_recommendations (product_id, policy_id, recommended_price, request_constraints, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ProductID, rec.PolicyID, rec.RecommendedPrice, string(raw), time.Now().Unix(),
	)
	return err
}

// Recent returns the newest rows, up to limit.
func (l *RecommendationLog) Recent(limit int) ([]LoggedRecommendation, error) {
	if limit <= 0 {
		limit = 100
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := l.db.Query(
		`SELECT recommendation_id, product_id, policy_id, recommended_price, request_constraints, created_at
		   FROM price_recommendations ORDER BY recommendation_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LoggedRecommendation, 0, limit)
	for rows.Next() {
		var rec LoggedRecommendation
		if err := rows.Scan(&rec.RecommendationID, &rec.ProductID, &rec.PolicyID,
			&rec.RecommendedPrice, &rec.Constraints, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (l *RecommendationLog) Close() error {
	return l.db.Close()
}
