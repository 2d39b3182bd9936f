package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/all-in-admin/internal/metrics"
)

type recorded struct {
	method  string
	path    string
	auth    string
	reqID   string
	ctype   string
	payload string
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method:  r.Method,
			path:    r.URL.Path,
			auth:    r.Header.Get("Authorization"),
			reqID:   r.Header.Get(RequestIDHeader),
			ctype:   r.Header.Get("Content-Type"),
			payload: string(raw),
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(t *testing.T, baseURL string, m *metrics.Metrics) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: baseURL + "/api/", Tokens: StaticToken("static-token"), Metrics: m})
	require.NoError(t, err)
	return c
}

func TestGetSendsHeadersAndReturnsBody(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"employees":[{"id":2}]}`)
	c := newClient(t, srv.URL, nil)

	ctx := WithRequestID(context.Background(), "req-1")
	body, err := c.Get(ctx, "/employees")
	require.NoError(t, err)

	assert.JSONEq(t, `{"employees":[{"id":2}]}`, string(body))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/employees", rec.path)
	assert.Equal(t, "Bearer static-token", rec.auth)
	assert.Equal(t, "req-1", rec.reqID)
	assert.Empty(t, rec.ctype)
}

func TestContextTokenOverridesSource(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `[]`)
	c := newClient(t, srv.URL, nil)

	_, err := c.Get(WithBearerToken(context.Background(), "caller-token"), "/expenses")
	require.NoError(t, err)
	assert.Equal(t, "Bearer caller-token", rec.auth)
}

func TestPostAndPutEncodeBodies(t *testing.T) {
	srv, rec := newBackend(t, http.StatusCreated, `{"id":5,"name":"Ops"}`)
	c := newClient(t, srv.URL, nil)

	created, err := c.Post(context.Background(), "/designations", map[string]string{"name": "Ops"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"name":"Ops"}`, string(created))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "application/json", rec.ctype)
	assert.JSONEq(t, `{"name":"Ops"}`, rec.payload)

	raw := json.RawMessage(`{"name": "Ops",   "level": 3}`)
	_, err = c.Put(context.Background(), "/designations/5", raw)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/designations/5", rec.path)
	assert.Equal(t, string(raw), rec.payload)
}

func TestDeleteNoContent(t *testing.T) {
	srv, rec := newBackend(t, http.StatusNoContent, ``)
	c := newClient(t, srv.URL, nil)

	body, err := c.Delete(context.Background(), "/expenses/9")
	require.NoError(t, err)
	assert.Nil(t, body)
	assert.Equal(t, http.MethodDelete, rec.method)
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusNotFound, `{"error":"no such employee"}`)
	m := metrics.New(nil)
	c := newClient(t, srv.URL, m)

	_, err := c.Get(context.Background(), "/employees/404")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "/employees/404", statusErr.Path)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "no such employee")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "404")))
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `<html>oops</html>`)
	c := newClient(t, srv.URL, nil)

	_, err := c.Get(context.Background(), "/employees")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestTransportError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `[]`)
	m := metrics.New(nil)
	c := newClient(t, srv.URL, m)
	srv.Close()

	_, err := c.Get(context.Background(), "/expenses")
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "error")))
}

func TestNewRejectsRelativeBase(t *testing.T) {
	_, err := New(Options{BaseURL: "/api"})
	assert.Error(t, err)
}
