// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gradscout/internal/config"
	"gradscout/internal/domain/ports/adapter"
	aiAdapters "gradscout/internal/infra/adapters/ai"
	pg "gradscout/internal/infra/db/postgres"
	"gradscout/internal/infra/logging"
	"gradscout/internal/infra/metrics"
	red "gradscout/internal/infra/redis"
	"gradscout/internal/infra/web"
	"gradscout/internal/infra/worker"
	"gradscout/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (canned AI responses)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	sessionRepo := red.NewSessionRepo(redisClient)
	historyRepo := red.NewHistoryRepo(redisClient)

	// ---- AI provider (Gemini -> OpenAI -> canned in dev) ----
	var provider adapter.CareerAIProvider
	switch {
	case cfg.AI.GeminiKey != "":
		provider, err = aiAdapters.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL,
			cfg.AI.TextModel, cfg.AI.ImageModel, cfg.AI.TTSModel, cfg.AI.Voice)
		if err != nil {
			log.Fatalf("gemini provider: %v", err)
		}
		log.Printf("AI provider: Gemini text=%s image=%s tts=%s", cfg.AI.TextModel, cfg.AI.ImageModel, cfg.AI.TTSModel)
	case cfg.AI.OpenAIKey != "":
		provider, err = aiAdapters.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.TextModel)
		if err != nil {
			log.Fatalf("openai provider: %v", err)
		}
		log.Printf("AI provider: OpenAI model=%s", cfg.AI.TextModel)
	case cfg.Runtime.Dev:
		provider = aiAdapters.NewNoopProvider()
		log.Printf("AI provider: canned dev responses")
	default:
		log.Fatalf("no AI provider configured: set ai.gemini_key or ai.openai_key in %s", *cfgPath)
	}
	provider = aiAdapters.NewLimitedProvider(provider, cfg.AI.ConcurrentLimit)

	// ---- Use cases ----
	historyLog := usecase.NewPromptHistoryLog(historyRepo, worker.NewKeyedSerial(), logger)
	gatewayUC := usecase.NewGatewayUseCase(provider, historyLog, logger)
	searchUC := usecase.NewSearchOrchestrator(gatewayUC, cfg.AI.CallTimeout, logger)
	sessionUC := usecase.NewSessionUseCase(sessionRepo, logger)
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, logger)

	// ---- HTTP server ----
	srv := web.NewServer(authUC, sessionUC, searchUC, historyLog, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * cfg.AI.CallTimeout,
	}
	go func() {
		log.Printf("http listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Println("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	cancel()
}
