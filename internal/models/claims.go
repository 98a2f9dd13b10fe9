package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims carried by authenticated requests.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}
