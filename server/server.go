package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/pricing-rl/service"
	"github.com/zeu5/pricing-rl/store"
	"github.com/zeu5/pricing-rl/types"
	"go.uber.org/zap"
)

// PriceRequest asks for a recommendation under optional constraints.
type PriceRequest struct {
	ProductID   int64             `json:"product_id" binding:"required"`
	Constraints types.Constraints `json:"constraints"`
}

// WhatIfRequest asks for the predicted outcome at a hypothetical price.
type WhatIfRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// WhatIfScenario echoes the request next to the prediction.
type WhatIfScenario struct {
	Request    WhatIfRequest          `json:"request"`
	Prediction types.WhatIfPrediction `json:"prediction"`
}

// Server is the HTTP boundary over the recommendation service and the
// catalog/registry reads.
type Server struct {
	engine   *gin.Engine
	svc      *service.Service
	products *store.ProductStore
	registry types.PolicyRegistry
	logger   *zap.Logger
}

func New(svc *service.Service, products *store.ProductStore, registry types.PolicyRegistry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		engine:   r,
		svc:      svc,
		products: products,
		registry: registry,
		logger:   logger,
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/recommend_price", s.handleRecommendPrice)
	r.POST("/what_if", s.handleWhatIf)
	r.GET("/products", s.handleListProducts)
	r.GET("/products/:product_id", s.handleProductDetails)
	r.GET("/products/:product_id/kpis", s.handleProductKPIs)
	r.GET("/products/:product_id/competitor_prices", s.handleCompetitorPrices)
	r.GET("/policies", s.handleListPolicies)
	r.POST("/policies/:policy_id/activate", s.handleActivatePolicy)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.logger.Info("serving pricing API", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func (s *Server) handleRecommendPrice(c *gin.Context) {
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rec, err := s.svc.Recommend(c.Request.Context(), req.ProductID, req.Constraints)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleWhatIf(c *gin.Context) {
	var req WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	prediction, err := s.svc.WhatIf(req.ProductID, req.Price)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, WhatIfScenario{Request: req, Prediction: prediction})
}

func (s *Server) handleListProducts(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	products, err := s.products.List(skip, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) handleProductDetails(c *gin.Context) {
	id, ok := s.productID(c)
	if !ok {
		return
	}
	details, err := s.products.Details(id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) handleProductKPIs(c *gin.Context) {
	id, ok := s.productID(c)
	if !ok {
		return
	}
	kpis, err := s.products.KPIs(id, 100)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (s *Server) handleCompetitorPrices(c *gin.Context) {
	id, ok := s.productID(c)
	if !ok {
		return
	}
	prices, err := s.products.CompetitorPrices(id, 500)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

func (s *Server) handleListPolicies(c *gin.Context) {
	recs, err := s.registry.List()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleActivatePolicy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("policy_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid policy id"})
		return
	}
	if err := s.registry.Activate(id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy to transport codes. Anything
// outside the taxonomy is a generic 500 without internals.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, types.ErrPolicyUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no active pricing policy"})
	case types.IsUsage(err), types.IsConfiguration(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
