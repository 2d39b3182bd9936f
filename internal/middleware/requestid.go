package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hongminglow/all-in-admin/internal/api"
)

// RequestID tags each request with an id, reusing a sane inbound
// X-Request-ID. The id is echoed in the response and forwarded to the backend.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(api.RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(api.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(api.WithRequestID(r.Context(), id)))
	})
}
