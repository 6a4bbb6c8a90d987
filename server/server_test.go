package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pricing-rl/policies"
	"github.com/zeu5/pricing-rl/pricing"
	"github.com/zeu5/pricing-rl/service"
	"github.com/zeu5/pricing-rl/store"
	"github.com/zeu5/pricing-rl/types"
	"golang.org/x/exp/rand"
)

type testServer struct {
	handler  http.Handler
	registry *store.Registry
	active   *types.PolicyRecord
}

// newTestServer wires the full serving stack over a seeded temp database
// and one registered, activated softmax policy.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "pricing.db"))
	require.NoError(t, err)
	require.NoError(t, store.Seed(db))

	contexts := store.NewContextStore(db)
	registry := store.NewRegistry(db)
	artifacts := store.FileArtifactStore{}

	policy := policies.NewSoftMaxPolicy(1.0, 1.0, 1000, rand.NewSource(1))
	rows, err := contexts.ProductContexts()
	require.NoError(t, err)
	for _, row := range rows {
		obs := types.Observation{
			AvgCompetitorPrice7d: row.AvgCompetitorPrice7d,
			AvgSentiment30d:      row.AvgSentiment30d,
			AvgOrders14d:         row.AvgOrders14d,
			CurrentPriceRatio:    1,
		}
		policy.Update(obs, -0.1, 5000)
	}
	data, err := policy.MarshalBinary()
	require.NoError(t, err)

	storagePath := filepath.Join(dir, "models", "softmax_test.json")
	require.NoError(t, artifacts.Save(storagePath, data))
	rec := &types.PolicyRecord{
		PolicyName:  "softmax_test",
		Algorithm:   policies.AlgorithmSoftMax,
		StoragePath: storagePath,
	}
	require.NoError(t, registry.Register(rec))
	require.NoError(t, registry.Activate(rec.PolicyID))

	svc, err := service.New(service.Config{
		Contexts:  contexts,
		Registry:  registry,
		Artifacts: artifacts,
		Demand:    pricing.NewSeededDemandModel(42),
	})
	require.NoError(t, err)

	srv := New(svc, store.NewProductStore(db), registry, nil)
	return &testServer{handler: srv.Handler(), registry: registry, active: rec}
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRecommendPrice(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/recommend_price", map[string]any{"product_id": 101})
	require.Equal(t, http.StatusOK, w.Code)

	var rec types.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, int64(101), rec.ProductID)
	// base 249.99 with the learned 10% discount, rounded to cents
	assert.InDelta(t, 224.99, rec.RecommendedPrice, 1e-9)
	assert.Equal(t, ts.active.PolicyID, rec.PolicyID)
}

func TestRecommendPriceWithConstraints(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/recommend_price", map[string]any{
		"product_id":  101,
		"constraints": map[string]any{"max_price": 200.0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var rec types.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.LessOrEqual(t, rec.RecommendedPrice, 200.0)
}

func TestRecommendPriceUnknownProduct(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/recommend_price", map[string]any{"product_id": 99999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendPriceWithoutActivePolicy(t *testing.T) {
	ts := newTestServerWithoutPolicy(t)
	w := ts.post(t, "/recommend_price", map[string]any{"product_id": 101})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func newTestServerWithoutPolicy(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "pricing.db"))
	require.NoError(t, err)
	require.NoError(t, store.Seed(db))

	registry := store.NewRegistry(db)
	svc, err := service.New(service.Config{
		Contexts:  store.NewContextStore(db),
		Registry:  registry,
		Artifacts: store.FileArtifactStore{},
		Demand:    pricing.NewSeededDemandModel(42),
	})
	require.NoError(t, err)
	srv := New(svc, store.NewProductStore(db), registry, nil)
	return &testServer{handler: srv.Handler(), registry: registry}
}

func TestRecommendPriceMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/recommend_price", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhatIf(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/what_if", map[string]any{"product_id": 101, "price": 229.99})
	require.Equal(t, http.StatusOK, w.Code)

	var scenario WhatIfScenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scenario))
	assert.Equal(t, int64(101), scenario.Request.ProductID)
	assert.Greater(t, scenario.Prediction.Orders, 0)
	assert.Greater(t, scenario.Prediction.Revenue, 0.0)
	// 229.99 is below the 249.99 base price, so sentiment ticks up
	assert.Equal(t, 0.005, scenario.Prediction.CustomerSentimentImpact)
}

func TestWhatIfRejectsNonPositivePrice(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/what_if", map[string]any{"product_id": 101, "price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.post(t, "/what_if", map[string]any{"product_id": 101, "price": -10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhatIfUnknownProduct(t *testing.T) {
	ts := newTestServer(t)
	w := ts.post(t, "/what_if", map[string]any{"product_id": 99999, "price": 100})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/products")
	require.Equal(t, http.StatusOK, w.Code)

	var products []store.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 3)
	assert.Equal(t, "HyperDrone X1", products[0].Name)
}

func TestListProductsPagination(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/products?skip=2&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var products []store.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, int64(103), products[0].ProductID)
}

func TestProductDetails(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/products/101")
	require.Equal(t, http.StatusOK, w.Code)

	var details store.ProductDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "HD-01", details.SKU)
	assert.NotEmpty(t, details.CompetitorPrices)
}

func TestProductDetailsErrors(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/products/99999").Code)
	assert.Equal(t, http.StatusBadRequest, ts.get(t, "/products/not-a-number").Code)
}

func TestProductKPIs(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/products/102/kpis")
	require.Equal(t, http.StatusOK, w.Code)

	var kpis []store.ProductDailyKpi
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kpis))
	assert.Len(t, kpis, 14)
}

func TestCompetitorPrices(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/products/101/competitor_prices")
	require.Equal(t, http.StatusOK, w.Code)

	var prices []store.ObservedCompetitorPrice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prices))
	assert.Len(t, prices, 21)
	for _, p := range prices {
		assert.NotEmpty(t, p.CompetitorName)
	}
}

func TestListAndActivatePolicies(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get(t, "/policies")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.post(t, "/policies/99999/activate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.post(t, "/policies/abc/activate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
