package auth

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var segmentDecoder = jwt.NewParser(jwt.WithPaddingAllowed())

// base64 standard alphabet to URL-safe alphabet
var urlSafe = strings.NewReplacer("+", "-", "/", "_")

// DecodeClaims reads the payload of a header.payload.signature token
// without checking the signature. It returns nil when the token does not
// have exactly three segments or the payload is not base64 encoded JSON
// object. Roles is nil when the claim is missing or is not a list; elements
// that are not strings are skipped.
func DecodeClaims(token string) *Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := segmentDecoder.DecodeSegment(urlSafe.Replace(parts[1]))
	if err != nil {
		return nil
	}

	var raw jwt.MapClaims
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return nil
	}
	return fromMap(raw)
}

func fromMap(raw jwt.MapClaims) *Claims {
	claims := &Claims{Raw: raw, Roles: stringList(raw["roles"])}

	if sub, err := raw.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if iss, err := raw.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if exp, err := raw.GetExpirationTime(); err == nil {
		claims.ExpiresAt = exp
	}
	if iat, err := raw.GetIssuedAt(); err == nil {
		claims.IssuedAt = iat
	}
	if id, ok := raw["userId"].(float64); ok {
		claims.UserID = int64(id)
	}
	return claims
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
