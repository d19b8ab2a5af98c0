package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
)

// RouterConfig holds what the HTTP API needs besides the market service
type RouterConfig struct {
	Version        string
	Endpoint       string
	RequestTimeout time.Duration
	Metrics        http.Handler
}

// NewRouter builds the HTTP API
func NewRouter(market *services.MarketService, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	healthHandler := NewHealthHandler(cfg.Version, cfg.Endpoint)
	tokenHandler := NewTokenHandler(market)
	pairHandler := NewPairHandler(market)
	priceHandler := NewPriceHandler(market)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(CORS)

	r.Get("/health", healthHandler.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tokens/{id}", tokenHandler.GetToken)
		r.Get("/tokens/{id}/pairs", tokenHandler.GetPairs)
		r.Get("/pairs/resolve", pairHandler.Resolve)
		r.Get("/pairs/{id}/swaps", pairHandler.Swaps)
		r.Get("/pairs/{id}/swaps/near", pairHandler.SwapsNear)
		r.Get("/price", priceHandler.GetPrice)
	})

	return r
}
