package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autosyndicate/config"
	httpLayer "autosyndicate/http"
	"autosyndicate/hub"
	"autosyndicate/repository"
	"autosyndicate/service"
)

func main() {
	configPath := os.Getenv("AUTOSYNDICATE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	var cache repository.CacheRepository
	cacheKind := "memory"
	if cfg.Cache.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		cacheKind = "redis"
	} else {
		cache = repository.NewMockCache()
	}

	evaluationRepo := repository.NewEvaluationRepositoryMemory()
	eventHub := hub.New()

	aiService := service.NewAIService(
		cfg.AI.BaseURL,
		os.Getenv(cfg.AI.APIKeyEnv),
		cfg.AI.Model,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		cfg.AI.MaxResponseBytes,
	)
	tasks := service.NewResilientTask(aiService)

	allocationService := service.NewAllocationService(
		evaluationRepo, cache, tasks, eventHub, cfg.Engine.AdmissionThreshold)
	documentService := service.NewDocumentService(tasks)
	riskService := service.NewRiskService()
	esgService := service.NewESGService()
	covenantService := service.NewCovenantService(eventHub)

	allocationHandler := httpLayer.NewAllocationHandler(allocationService)
	documentHandler := httpLayer.NewDocumentHandler(documentService)
	riskHandler := httpLayer.NewRiskHandler(riskService)
	esgHandler := httpLayer.NewESGHandler(esgService)
	covenantHandler := httpLayer.NewCovenantHandler(covenantService)
	healthHandler := httpLayer.NewHealthHandler(aiService.Enabled(), cacheKind)
	wsHandler := httpLayer.NewWSHandler(eventHub)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthHandler.Root)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/ws", wsHandler.Handler())

	mux.Handle(
		"/api/allocate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(allocationHandler.Allocate),
		),
	)

	mux.HandleFunc("/api/allocations", allocationHandler.Recommendations)

	mux.Handle(
		"/api/parse-document",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(documentHandler.ParseDocument),
		),
	)

	mux.Handle(
		"/api/risk-assessment",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(riskHandler.AssessRisk),
		),
	)

	mux.Handle(
		"/api/esg-analysis",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(esgHandler.AnalyzeESG),
		),
	)

	mux.Handle(
		"/api/covenant-predict",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(covenantHandler.PredictBreach),
		),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("autosyndicate listening on %s (generative=%v cache=%s)",
			cfg.Server.Addr, aiService.Enabled(), cacheKind)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
