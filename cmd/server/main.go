package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intervox/internal/cache"
	"intervox/internal/config"
	"intervox/internal/dialogue"
	"intervox/internal/repository"
	"intervox/internal/service"
	"intervox/internal/transport/rest"
	"intervox/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	oracleCfg := config.LoadOracleConfig()
	if oracleCfg.IsEnabled() {
		log.Println("Oracle: configured")
	} else {
		log.Println("Oracle: NOT SET (evaluations degrade to empty scores)")
	}
	if cfg.BackendHost == "" {
		log.Println("Warning: BACKEND_HOST not set, evaluations will not be persisted")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("intervox")

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Repositories and caches
	evalRepo := repository.NewEvaluationRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)

	// Services
	tokenSvc := service.NewTokenService(cfg.JWTSecret)
	sessionSvc := service.NewSessionService(roleRepo, sessionCache, tokenSvc, cfg.PublicURL, cfg.BackendHost)
	evaluator := service.NewEvaluatorService(oracleCfg)

	// Session host
	engineCfg := dialogue.DefaultConfig()
	engineCfg.MaxQuestions = cfg.MaxQuestions
	wsHub := ws.NewHub()
	wsHandler := ws.NewHandler(wsHub, tokenSvc, sessionCache, evaluator, engineCfg)

	container := &rest.Container{
		SessionService: sessionSvc,
		EvaluationRepo: evalRepo,
		RoleRepo:       roleRepo,
		WSHandler:      wsHandler,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/sessions")
		log.Println("  GET  /v1/sessions/{room}")
		log.Println("  GET  /v1/evaluations")
		log.Println("  GET  /v1/roles")
		log.Println("  POST /save_evaluation")
		log.Println("  WS   /v1/ws/rooms/{room}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
