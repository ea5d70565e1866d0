package middleware

import (
	"context"
	"net/http"
	"strings"

	"beetacademy/internal/service"
)

type contextKey string

const (
	TraineeIDKey   contextKey = "traineeId"
	TraineeNameKey contextKey = "traineeName"
)

// EvaluatorSecretHeader carries the shared secret on evaluator webhook calls.
const EvaluatorSecretHeader = "X-Evaluator-Secret"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireTrainee validates the trainee JWT from the Authorization header.
func (m *AuthMiddleware) RequireTrainee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateTraineeToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, TraineeIDKey, claims.TraineeID)
		ctx = context.WithValue(ctx, TraineeNameKey, claims.Name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireEvaluator validates the evaluator webhook shared secret.
func (m *AuthMiddleware) RequireEvaluator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.authSvc.ValidateEvaluatorSecret(r.Header.Get(EvaluatorSecretHeader)) {
			http.Error(w, `{"error":"invalid evaluator secret"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetTraineeID extracts the trainee id from context
func GetTraineeID(ctx context.Context) string {
	if v := ctx.Value(TraineeIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetTraineeName extracts the trainee display name from context
func GetTraineeName(ctx context.Context) string {
	if v := ctx.Value(TraineeNameKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
