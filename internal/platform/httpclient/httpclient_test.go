package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hola", in["msg"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	var out struct {
		ID string `json:"id"`
	}
	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodPost, srv.URL, map[string]string{"Authorization": "Bearer t0k"}, map[string]string{"msg": "hola"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.ID)
}

func TestDoJSON_EmptyBodyWithOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]any
	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, &out)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestDoJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gateway down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := New(time.Second).DoJSON(context.Background(), http.MethodPost, srv.URL, nil, map[string]string{}, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "gateway down", se.Body)
	assert.True(t, se.Temporary())
}

func TestDoJSON_RejectsRelativeURL(t *testing.T) {
	err := New(0).DoJSON(context.Background(), http.MethodGet, "/relative", nil, nil, nil)
	assert.Error(t, err)
}

func TestNew_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New(0).HTTP.Timeout)
}
