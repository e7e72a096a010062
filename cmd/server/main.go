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

	"quizdesk/internal/cache"
	"quizdesk/internal/config"
	"quizdesk/internal/repository"
	"quizdesk/internal/service"
	"quizdesk/internal/transport/rest"
	"quizdesk/internal/transport/ws"
)

// @title QuizDesk API
// @version 1.0
// @description Quiz delivery and grading service
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	resultRepo := repository.NewResultRepo(db)

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret))
	quizSvc := service.NewQuizService(quizRepo)
	attemptSvc := service.NewAttemptService(quizRepo, resultRepo)
	evaluationSvc := service.NewEvaluationService(quizRepo, resultRepo)
	publicationSvc := service.NewPublicationService(resultRepo, leaderboard)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	attemptSvc.SetBroadcaster(wsHub)
	evaluationSvc.SetBroadcaster(wsHub)
	publicationSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		QuizService:        quizSvc,
		AttemptService:     attemptSvc,
		EvaluationService:  evaluationSvc,
		PublicationService: publicationSvc,
		WSHub:              wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET/POST /v1/quizzes")
		log.Println("  POST /v1/quizzes/{quizId}/attempts")
		log.Println("  GET  /v1/quizzes/{quizId}/leaderboard")
		log.Println("  GET  /v1/results")
		log.Println("  GET  /v1/admin/results")
		log.Println("  POST /v1/admin/results/{resultId}/evaluate")
		log.Println("  POST /v1/admin/results/{resultId}/publish")
		log.Println("  WS   /v1/ws/admin/feed")

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
