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

	"beetacademy/internal/config"
	"beetacademy/internal/feedback"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/progress"
	"beetacademy/internal/repository"
	"beetacademy/internal/service"
	"beetacademy/internal/storage"
	"beetacademy/internal/transport/rest"
	"beetacademy/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	if cfg.EvaluatorSecret == "" {
		lg.Warn("EVALUATOR_SECRET not set, evaluator webhook is disabled")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		lg.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		lg.Fatal("failed to ping MongoDB", "error", err)
	}
	lg.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		lg.Fatal("failed to ping Redis", "error", err)
	}
	lg.Info("connected to Redis")

	// Attachment blob storage
	attachments, err := storage.NewBucketStore(ctx, lg)
	if err != nil {
		lg.Fatal("failed to initialize attachment storage", "error", err)
	}

	// WebSocket hub
	wsHub := ws.NewHub(lg)
	lg.Info("websocket hub started")

	// Repositories and stores
	submissionRepo := repository.NewSubmissionRepo(db)
	progressStore := progress.NewRedisStore(rdb)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.EvaluatorSecret)
	progressSvc := service.NewProgressService(progressStore, lg)
	submissionSvc := service.NewSubmissionService(submissionRepo, attachments, lg)
	parser := feedback.NewParser(feedback.Categories, lg)
	feedbackSvc := service.NewFeedbackService(submissionRepo, parser, lg)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	feedbackSvc.SetBroadcaster(wsHub)

	wsHandler := ws.NewHandler(wsHub, authSvc, submissionSvc, feedbackSvc, lg)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		ProgressService:   progressSvc,
		SubmissionService: submissionSvc,
		FeedbackService:   feedbackSvc,
		WSHub:             wsHub,
		WSHandler:         wsHandler,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		lg.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("listen and serve failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Fatal("server forced to shutdown", "error", err)
	}

	lg.Info("server exited")
}
