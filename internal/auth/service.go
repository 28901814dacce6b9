package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtService struct {
	secretKey []byte
	issuer    string
	expiry    time.Duration
}

func NewJWTService(secret string, expiry time.Duration) Service {
	return &jwtService{
		secretKey: []byte(secret),
		issuer:    "library-api",
		expiry:    expiry,
	}
}

func (s *jwtService) GenerateToken(id Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	claims := &Claims{
		UserID: id.UserID,
		Roles:  id.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	// NumericDate truncates to seconds; report what the token carries.
	return signed, claims.ExpiresAt.Time, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
