// Package session holds the client-side identity state: the backend's bearer
// token plus the role and profile claims captured at login. Employee and admin
// flows share the same store; the role claim alone decides which pages open.
package session

import (
	"crypto/subtle"
	"net/http"

	"github.com/bioattend/attendweb/internal/api"
)

const RoleAdmin = "admin"

// Session is created on successful login and lives until overwritten by the
// next login or cleared by logout. The token is opaque; its validity is
// decided by the backend on every call, never locally.
type Session struct {
	Token string
	Role  string
	EmpID string
	User  api.Employee
	CSRF  string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// ValidCSRF compares a submitted form token against the session's token in
// constant time.
func (s *Session) ValidCSRF(token string) bool {
	if s == nil || s.CSRF == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.CSRF), []byte(token)) == 1
}

// Store is the session repository. Read returns ErrNoSession when the request
// carries no usable session; a tampered or malformed cookie reads the same as
// an absent one.
type Store interface {
	Read(r *http.Request) (*Session, error)
	Write(w http.ResponseWriter, sess *Session) error
	Clear(w http.ResponseWriter)
}
