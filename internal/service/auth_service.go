package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"beetacademy/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNameRequired = errors.New("name is required")
)

// AuthService issues and validates trainee session tokens, and verifies the
// shared secret used by the external evaluator webhook.
type AuthService struct {
	jwtSecret       []byte
	evaluatorSecret string
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret, evaluatorSecret string) *AuthService {
	return &AuthService{
		jwtSecret:       []byte(jwtSecret),
		evaluatorSecret: evaluatorSecret,
	}
}

// CreateSession issues a session token for a trainee. Sessions are long-lived
// because training spans days.
func (s *AuthService) CreateSession(name string) (*model.SessionResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	traineeID := "trainee_" + uuid.New().String()[:8]

	claims := &model.TraineeClaims{
		TraineeID: traineeID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.SessionResponse{
		Token:     tokenString,
		TraineeID: traineeID,
	}, nil
}

// ValidateTraineeToken validates a trainee JWT and returns its claims.
func (s *AuthService) ValidateTraineeToken(tokenString string) (*model.TraineeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TraineeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.TraineeClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateEvaluatorSecret checks the webhook shared secret. An unset secret
// rejects every request rather than failing open.
func (s *AuthService) ValidateEvaluatorSecret(secret string) bool {
	if s.evaluatorSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.evaluatorSecret)) == 1
}
