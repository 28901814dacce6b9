package session

import (
	"slices"

	"github.com/nookcoder/library-console/internal/auth"
)

// Claims decodes the persisted token. It returns nil when there is no
// token or it cannot be decoded.
func (s *Store) Claims() *auth.Claims {
	token, ok := s.Token()
	if !ok {
		return nil
	}
	return auth.DecodeClaims(token)
}

// Roles returns the roles carried by the persisted token as issued,
// duplicates included. It never returns nil.
func (s *Store) Roles() []string {
	claims := s.Claims()
	if claims == nil || claims.Roles == nil {
		return []string{}
	}
	return claims.Roles
}

// HasRole reports whether the session holds at least one of required.
func (s *Store) HasRole(required ...string) bool {
	roles := s.Roles()
	for _, want := range required {
		if slices.Contains(roles, want) {
			return true
		}
	}
	return false
}
