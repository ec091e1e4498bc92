package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bioattend/attendweb/internal/api"
)

const CookieName = "attendweb_session"

var ErrNoSession = errors.New("no session")

type sessionClaims struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	EmpID string       `json:"emp_id"`
	User  api.Employee `json:"user"`
	CSRF  string       `json:"csrf"`
	jwt.RegisteredClaims
}

// CookieStore persists the session as an HS256-signed JWT cookie. No expiry
// claim is set: the session survives browser restarts until the next login or
// an explicit logout, and the backend alone decides whether the carried bearer
// token is still good.
type CookieStore struct {
	secret []byte
}

func NewCookieStore(secret string) *CookieStore {
	return &CookieStore{secret: []byte(secret)}
}

func (c *CookieStore) Read(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.Token == "" {
		return nil, ErrNoSession
	}

	return &Session{
		Token: claims.Token,
		Role:  claims.Role,
		EmpID: claims.EmpID,
		User:  claims.User,
		CSRF:  claims.CSRF,
	}, nil
}

func (c *CookieStore) Write(w http.ResponseWriter, sess *Session) error {
	claims := &sessionClaims{
		Token: sess.Token,
		Role:  sess.Role,
		EmpID: sess.EmpID,
		User:  sess.User,
		CSRF:  sess.CSRF,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
