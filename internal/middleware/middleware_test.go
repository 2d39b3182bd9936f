package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/models"
	"github.com/hongminglow/all-in-admin/internal/router"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("secret", "all-in-admin", time.Hour)
}

func mintToken(t *testing.T, tokens *auth.TokenManager, role models.Role) string {
	t.Helper()
	token, err := tokens.Generate(models.User{ID: 1, Username: "u", Role: role})
	require.NoError(t, err)
	return token
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestGate(t *testing.T) {
	tokens := newTokens()
	guard := router.NewGuard(router.DefaultTable(), nil, nil)

	var seen router.Route
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = router.RouteFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Sessions(tokens, Gate(guard, page))

	cases := []struct {
		name     string
		path     string
		role     models.Role
		status   int
		location string
	}{
		{name: "anonymous login page", path: "/admin/login", status: http.StatusOK},
		{name: "anonymous admin alias", path: "/admin", status: http.StatusOK},
		{name: "anonymous employees", path: "/employees", status: http.StatusFound, location: "/admin/login?nextUrl=%2Femployees"},
		{name: "anonymous with query", path: "/expenses?month=3", status: http.StatusFound, location: "/admin/login?nextUrl=%2Fexpenses%3Fmonth%3D3"},
		{name: "accountant users", path: "/users", role: models.RoleAccountant, status: http.StatusFound, location: "/"},
		{name: "admin users", path: "/users", role: models.RoleAdmin, status: http.StatusOK},
		{name: "accountant expenses", path: "/expenses", role: models.RoleAccountant, status: http.StatusOK},
		{name: "unknown role landing", path: "/", role: "viewer", status: http.StatusForbidden},
		{name: "unknown role dashboard", path: "/dashboard", role: "viewer", status: http.StatusFound, location: "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.role != "" {
				req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: mintToken(t, tokens, tc.role)})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, tokens, models.RoleAdmin))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "users", seen.Name)
}

func TestSessionsAndRequireSession(t *testing.T) {
	tokens := newTokens()
	h := Sessions(tokens, RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, models.RoleAdmin, auth.FromContext(r.Context()).UserRole())
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resources/employees", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resources/employees", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := mintToken(t, tokens, models.RoleAdmin)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/resources/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestIDAndLogging(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	var ctxID string
	h := RequestID(Logging(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = api.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	generated := rec.Header().Get(api.RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, ctxID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/health", entry.Data["path"])
	assert.Equal(t, generated, entry.Data["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(api.RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(api.RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://console.example"}, http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://CONSOLE.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://CONSOLE.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wildcard := CORS([]string{"*"}, http.HandlerFunc(okHandler))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://any.example")
	rec = httptest.NewRecorder()
	wildcard.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
