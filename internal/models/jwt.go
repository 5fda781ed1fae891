package models

import "github.com/golang-jwt/jwt/v5"

// Claims carries the signed-in user. RegisteredClaims.ID holds the jti used for revocation.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
