package model

import "github.com/golang-jwt/jwt/v5"

// TraineeClaims are the JWT claims for a trainee session token.
type TraineeClaims struct {
	TraineeID string `json:"traineeId"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// SessionRequest is the request body for opening a trainee session.
type SessionRequest struct {
	Name string `json:"name"`
}

// SessionResponse carries a freshly issued trainee session token.
type SessionResponse struct {
	Token     string `json:"token"`
	TraineeID string `json:"traineeId"`
}
