package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"puericultura/internal/platform/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestAPIKey(t *testing.T) {
	h := APIKey("s3cret", "/health")(ok)

	cases := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"missing", "/children", nil, http.StatusUnauthorized},
		{"wrong", "/children", map[string]string{"X-Api-Key": "nope"}, http.StatusUnauthorized},
		{"header", "/children", map[string]string{"X-Api-Key": "s3cret"}, http.StatusTeapot},
		{"bearer", "/children", map[string]string{"Authorization": "Bearer s3cret"}, http.StatusTeapot},
		{"basic is not bearer", "/children", map[string]string{"Authorization": "Basic s3cret"}, http.StatusUnauthorized},
		{"public", "/health", nil, http.StatusTeapot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestAPIKey_EmptyKeyIsDevMode(t *testing.T) {
	rec := httptest.NewRecorder()
	APIKey("")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/children", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Format: logger.FormatText, Output: &buf})
	h := chimw.RequestID(AccessLog(log)(ok))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agenda", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "path=/agenda")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=")
}
