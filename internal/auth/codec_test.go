package auth_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/nookcoder/library-console/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(payload string) string {
	return "eyJhbGciOiJIUzUxMiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2ln"
}

func TestDecodeClaims_Roles(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		roles   []string
	}{
		{"single role", `{"roles":["ADMIN"]}`, []string{"ADMIN"}},
		{"order and duplicates kept", `{"roles":["USER","ADMIN","USER"]}`, []string{"USER", "ADMIN", "USER"}},
		{"empty list", `{"roles":[]}`, []string{}},
		{"missing roles", `{"sub":"a@b.c"}`, nil},
		{"roles not a list", `{"roles":"ADMIN"}`, nil},
		{"non string roles skipped", `{"roles":["ADMIN",7,null,"USER","ADMIN"]}`, []string{"ADMIN", "USER", "ADMIN"}},
		{"only non string roles", `{"roles":[7,{"name":"ADMIN"}]}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := auth.DecodeClaims(token(tt.payload))
			require.NotNil(t, claims)
			assert.Equal(t, tt.roles, claims.Roles)
		})
	}
}

func TestDecodeClaims_Malformed(t *testing.T) {
	inputs := map[string]string{
		"empty":           "",
		"one segment":     "abc",
		"two segments":    "abc." + base64.RawURLEncoding.EncodeToString([]byte(`{"roles":["ADMIN"]}`)),
		"four segments":   token(`{"roles":["ADMIN"]}`) + ".x",
		"empty payload":   "a..c",
		"invalid base64":  "a.!!!!.c",
		"invalid json":    token(`{"roles":`),
		"json not object": token(`["ADMIN"]`),
		"json null":       token(`null`),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, auth.DecodeClaims(in))
		})
	}
}

func TestDecodeClaims_PaddingAndStandardAlphabet(t *testing.T) {
	// standard encoding of this payload contains "/" and "=" padding
	payload := `{"roles":["ADMIN"],"x":"?>?"}`

	padded := "h." + base64.URLEncoding.EncodeToString([]byte(payload)) + ".s"
	require.NotNil(t, auth.DecodeClaims(padded))

	std := "h." + base64.StdEncoding.EncodeToString([]byte(payload)) + ".s"
	require.Contains(t, std, "/")
	claims := auth.DecodeClaims(std)
	require.NotNil(t, claims)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
	assert.Equal(t, "?>?", claims.Raw["x"])
}

func TestDecodeClaims_RegisteredFields(t *testing.T) {
	claims := auth.DecodeClaims(token(`{"sub":"ada@library.local","userId":42,"exp":1900000000,"roles":["USER"]}`))
	require.NotNil(t, claims)

	assert.Equal(t, "ada@library.local", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Unix(1900000000, 0).UTC(), claims.ExpiresAt.UTC())
}

func TestDecodeClaims_IgnoresSignature(t *testing.T) {
	service := auth.NewJWTService("one-secret", time.Hour)
	signed, _, err := service.GenerateToken(auth.Identity{UserID: 1, Email: "a@b.c", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	other := auth.NewJWTService("another-secret", time.Hour)
	_, err = other.ValidateToken(signed)
	assert.Error(t, err)

	claims := auth.DecodeClaims(signed)
	require.NotNil(t, claims)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
}
