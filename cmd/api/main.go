package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bimakw/uniswap-subgraph/internal/config"
	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
	"github.com/bimakw/uniswap-subgraph/internal/domain/services"
	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/metrics"
	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
	"github.com/bimakw/uniswap-subgraph/internal/logger"
	"github.com/bimakw/uniswap-subgraph/internal/presentation/handlers"
)

const (
	version = "0.3.0"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogMode, cfg.Debug); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Token registry
	registry := entities.DefaultRegistry()
	if cfg.TokensFile != "" {
		if err := registry.LoadFromFile(cfg.TokensFile); err != nil {
			logger.Fatal("Failed to load tokens file",
				zap.String("path", cfg.TokensFile),
				zap.Error(err))
		}
	}
	logger.Info("Token registry ready", zap.Int("tokens", registry.Count()))

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewSubgraphCollector(reg)

	// Subgraph client
	opts := append(cfg.SubgraphOptions(), subgraph.WithMetricsCollector(collector))
	client := subgraph.NewClient(opts...)
	logger.Info("Using subgraph", zap.String("endpoint", client.Endpoint()))

	market := services.NewMarketService(client, registry)

	r := handlers.NewRouter(market, handlers.RouterConfig{
		Version:        version,
		Endpoint:       client.Endpoint(),
		RequestTimeout: cfg.SubgraphTimeout + 5*time.Second,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SubgraphTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("Starting Uniswap subgraph API",
			zap.String("version", version),
			zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
