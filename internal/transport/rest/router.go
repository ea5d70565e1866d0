package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"beetacademy/internal/service"
	"beetacademy/internal/transport/rest/handler"
	"beetacademy/internal/transport/rest/middleware"
	"beetacademy/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	ProgressService   *service.ProgressService
	SubmissionService *service.SubmissionService
	FeedbackService   *service.FeedbackService
	WSHub             *ws.Hub
	WSHandler         *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	trackHandler := handler.NewTrackHandler(c.ProgressService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService, c.FeedbackService)
	evaluationHandler := handler.NewEvaluationHandler(c.FeedbackService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/session", authHandler.CreateSession).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param; ownership checked in handler)
	v1.HandleFunc("/ws/submissions/{id}", c.WSHandler.WatchSubmission).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Trainee routes (require trainee auth)
	traineeRoutes := v1.NewRoute().Subrouter()
	traineeRoutes.Use(authMW.RequireTrainee)

	traineeRoutes.HandleFunc("/tracks", trackHandler.List).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}", trackHandler.Get).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/reset", trackHandler.Reset).Methods("POST", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/complete", trackHandler.CompleteModule).Methods("POST", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/checklist", trackHandler.GetChecklist).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/checklist", trackHandler.UpdateChecklist).Methods("PUT", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/checklist/check-all", trackHandler.CheckAll).Methods("POST", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/quiz", trackHandler.GetQuiz).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/tracks/{trackId}/modules/{index}/quiz/evaluate", trackHandler.SubmitQuiz).Methods("POST", "OPTIONS")

	traineeRoutes.HandleFunc("/submissions", submissionHandler.Create).Methods("POST", "OPTIONS")
	traineeRoutes.HandleFunc("/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/submissions/{id}", submissionHandler.Get).Methods("GET", "OPTIONS")
	traineeRoutes.HandleFunc("/submissions/{id}/feedback", submissionHandler.GetFeedback).Methods("GET", "OPTIONS")

	// Evaluator webhook (shared secret)
	evaluatorRoutes := v1.NewRoute().Subrouter()
	evaluatorRoutes.Use(authMW.RequireEvaluator)
	evaluatorRoutes.HandleFunc("/internal/evaluations/{id}", evaluationHandler.Complete).Methods("POST")

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
			allowedHeaders = "Content-Type, Authorization, X-Evaluator-Secret"
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
