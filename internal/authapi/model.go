package authapi

import (
	"fmt"
	"time"
)

// Credential is the token response of every /api/auth endpoint.
type Credential struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MembershipType string

const (
	MembershipStandard MembershipType = "STANDARD"
	MembershipPremium  MembershipType = "PREMIUM"
)

type RegisterRequest struct {
	Email            string         `json:"email"`
	Password         string         `json:"password"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	MembershipNumber string         `json:"membershipNumber"`
	MembershipType   MembershipType `json:"membershipType"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

// APIError is the error body returned by the library API.
type APIError struct {
	// Timestamp is kept as sent; the API emits local date-times without a zone.
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Reason    string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("library api: %d %s", e.Status, e.Message)
	}
	if e.Reason != "" {
		return fmt.Sprintf("library api: %d %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("library api: status %d", e.Status)
}
