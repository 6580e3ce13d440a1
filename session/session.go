package session

import (
	"github.com/jrsteele09/go-auth-session/claims"
)

// Keys the session is persisted under
const (
	TokenKey  = "sup_token"
	TenantKey = "sup_tenant"
)

// Role labels issued by the identity service. The set is open, any other
// label is carried through untouched.
const (
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Session is a snapshot of the current identity. Empty fields are absent.
// Role, UserID and a claim derived TenantID always come from the same decode
// of Token, and Token == "" means every other field is empty.
type Session struct {
	Token    string // Raw bearer token
	TenantID string // Organisational scope sent as X-Tenant-Id
	Role     string // Role claim
	UserID   string // sub claim
}

// IsAuthenticated reports whether a token is present
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// fromToken builds the authenticated state for token. tenant, when set,
// wins over the tenant claim.
func fromToken(token, tenant string, c *claims.Claims) Session {
	s := Session{Token: token, TenantID: tenant}
	if c == nil {
		return s
	}
	if s.TenantID == "" {
		s.TenantID = c.Tenant
	}
	s.Role = c.Role
	s.UserID = c.Subject
	return s
}
