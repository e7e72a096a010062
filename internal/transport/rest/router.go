package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"quizdesk/internal/service"
	"quizdesk/internal/transport/rest/handler"
	"quizdesk/internal/transport/rest/middleware"
	"quizdesk/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	QuizService        *service.QuizService
	AttemptService     *service.AttemptService
	EvaluationService  *service.EvaluationService
	PublicationService *service.PublicationService
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	quizHandler := handler.NewQuizHandler(c.QuizService)
	resultHandler := handler.NewResultHandler(c.AttemptService, c.EvaluationService, c.PublicationService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (admin, token in query param)
	v1.HandleFunc("/ws/admin/feed", wsHandler.AdminFeed).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes (any role)
	authed := v1.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/auth/profile", authHandler.Profile).Methods("GET", "OPTIONS")
	authed.HandleFunc("/quizzes", quizHandler.List).Methods("GET", "OPTIONS")
	authed.HandleFunc("/quizzes/{quizId}", quizHandler.Get).Methods("GET", "OPTIONS")
	authed.HandleFunc("/quizzes/{quizId}/attempts", resultHandler.SubmitAttempt).Methods("POST", "OPTIONS")
	authed.HandleFunc("/quizzes/{quizId}/leaderboard", resultHandler.Leaderboard).Methods("GET", "OPTIONS")
	authed.HandleFunc("/results", resultHandler.ListMine).Methods("GET", "OPTIONS")
	authed.HandleFunc("/results/{resultId}", resultHandler.Get).Methods("GET", "OPTIONS")

	// Admin routes
	admin := v1.NewRoute().Subrouter()
	admin.Use(authMW.RequireAuth, authMW.RequireAdmin)

	admin.HandleFunc("/quizzes", quizHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}", quizHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/admin/results", resultHandler.ListAll).Methods("GET", "OPTIONS")
	admin.HandleFunc("/admin/results/pending", resultHandler.ListPending).Methods("GET", "OPTIONS")
	admin.HandleFunc("/admin/results/{resultId}/evaluate", resultHandler.Evaluate).Methods("POST", "OPTIONS")
	admin.HandleFunc("/admin/results/{resultId}/publish", resultHandler.Publish).Methods("POST", "OPTIONS")
	admin.HandleFunc("/admin/quizzes/{quizId}/publish", resultHandler.PublishAll).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
