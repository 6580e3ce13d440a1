package claims

import (
	"encoding/json"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	roleClaim   = "role"
	tenantClaim = "tenant"
)

// Claims is the decoded payload of a bearer token. The values are advisory:
// nothing here has been verified, so they are only fit for display and for
// picking defaults such as the tenant. Authorization happens server side.
type Claims struct {
	Role    string           // Global role label (TEACHER, ADMIN, STUDENT, ...)
	Subject string           // Users unique ID (sub)
	Tenant  string           // Tenant the token was issued for, if any
	Raw     jwtlib.MapClaims // Every claim in the payload
}

// segmentParser only decodes segments, it never parses or verifies a token.
var segmentParser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// Decode extracts the claims from the middle segment of a three part token.
// It returns nil for anything malformed and never panics.
func Decode(token string) *Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	// Accept the standard alphabet too, DecodeSegment only knows base64url.
	payload := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	data, err := segmentParser.DecodeSegment(payload)
	if err != nil {
		return nil
	}

	raw := jwtlib.MapClaims{}
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}

	sub, _ := raw.GetSubject()
	role, _ := raw[roleClaim].(string)
	tenant, _ := raw[tenantClaim].(string)

	return &Claims{
		Role:    role,
		Subject: sub,
		Tenant:  tenant,
		Raw:     raw,
	}
}

// Issuer returns the iss claim, empty when missing
func (c *Claims) Issuer() string {
	if c == nil {
		return ""
	}
	iss, _ := c.Raw.GetIssuer()
	return iss
}

// ExpiresAt returns the exp claim. It is informational, tokens are never
// rejected for being expired.
func (c *Claims) ExpiresAt() (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}
	exp, err := c.Raw.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
