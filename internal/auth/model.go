package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the library API puts in its bearer tokens.
type Claims struct {
	UserID int64    `json:"userId,omitempty"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims

	// Raw holds every decoded payload field, including the ones above.
	Raw jwt.MapClaims `json:"-"`
}

// Identity is the subset of a user record a token is minted from.
type Identity struct {
	UserID int64
	Email  string
	Roles  []string
}

// Service issues and verifies signed tokens. Only the development API holds
// a Service; the console itself never verifies signatures.
type Service interface {
	GenerateToken(id Identity) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}
