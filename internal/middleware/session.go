package middleware

import (
	"net/http"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/http/respond"
)

// Sessions resolves the caller's session token and stores the session in the
// request context. Requests without a valid token continue as anonymous.
func Sessions(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.RequestToken(r)
		sess := tokens.Session(token)
		ctx := auth.WithSession(r.Context(), sess)
		if sess.IsAuthenticated() {
			ctx = api.WithBearerToken(ctx, token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests whose context carries no authenticated
// session. It must run after Sessions.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsAuthenticated() {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
