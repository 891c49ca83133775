package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string      `json:"user_id"`
	Role   UserRole    `json:"role"`
	Kind   AccountKind `json:"kind"`
	jwt.RegisteredClaims
}

// Caller is the authenticated identity a request acts as.
type Caller struct {
	UserID string
	Role   UserRole
	Kind   AccountKind
}
