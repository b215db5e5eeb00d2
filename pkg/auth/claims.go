package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uint
	Email  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. The jti doubles
// as the refresh-session key.
type AccessTokenClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
