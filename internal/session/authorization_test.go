package session_test

import (
	"testing"

	"github.com/nookcoder/library-console/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRoles(t *testing.T) {
	tests := []struct {
		name  string
		token string
		roles []string
	}{
		{"no session", "", []string{}},
		{"malformed token", "not-a-token", []string{}},
		{"roles absent", tokenWithRoles(`null`), []string{}},
		{"roles verbatim", tokenWithRoles(`["USER","ADMIN","USER"]`), []string{"USER", "ADMIN", "USER"}},
		{"non string roles skipped", tokenWithRoles(`["ADMIN",5]`), []string{"ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.New(session.NewMemoryStore(tt.token), &fakeTransport{})
			assert.Equal(t, tt.roles, store.Roles())
		})
	}
}

func TestHasRole(t *testing.T) {
	admin := session.New(session.NewMemoryStore(tokenWithRoles(`["ADMIN"]`)), &fakeTransport{})
	assert.True(t, admin.HasRole("ADMIN"))
	assert.True(t, admin.HasRole("LIBRARIAN", "ADMIN"))
	assert.False(t, admin.HasRole("LIBRARIAN"))
	assert.False(t, admin.HasRole())

	member := session.New(session.NewMemoryStore(tokenWithRoles(`["USER"]`)), &fakeTransport{})
	assert.False(t, member.HasRole("ADMIN", "LIBRARIAN"))

	mixed := session.New(session.NewMemoryStore(tokenWithRoles(`["ADMIN",5]`)), &fakeTransport{})
	assert.True(t, mixed.HasRole("ADMIN"))

	anonymous := session.New(session.NewMemoryStore(""), &fakeTransport{})
	assert.False(t, anonymous.HasRole("ADMIN"))
	assert.False(t, anonymous.HasRole("USER", "ADMIN", "LIBRARIAN"))
}

func TestMalformedToken_StillAuthenticated(t *testing.T) {
	store := session.New(session.NewMemoryStore("garbage"), &fakeTransport{})
	assert.True(t, store.IsAuthenticated())
	assert.Nil(t, store.Claims())
	assert.Empty(t, store.Roles())
}
