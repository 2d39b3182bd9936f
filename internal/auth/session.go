package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/all-in-admin/internal/models"
)

// TokenCookie is the cookie the console keeps its session token in.
const TokenCookie = "token"

// Session is the view of the authentication state the console depends on.
type Session interface {
	IsAuthenticated() bool
	UserRole() models.Role
}

// Anonymous is a visitor without a valid login.
type Anonymous struct{}

func (Anonymous) IsAuthenticated() bool { return false }
func (Anonymous) UserRole() models.Role { return "" }

// UserSession is an authenticated session backed by a verified token.
type UserSession struct {
	User  models.User
	Token string
}

func (s UserSession) IsAuthenticated() bool { return true }
func (s UserSession) UserRole() models.Role { return s.User.Role }

// RequestToken extracts the session token from the Authorization header,
// falling back to the token cookie.
func RequestToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

type sessionKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session stored by WithSession, or Anonymous.
func FromContext(ctx context.Context) Session {
	if sess, ok := ctx.Value(sessionKey{}).(Session); ok && sess != nil {
		return sess
	}
	return Anonymous{}
}
