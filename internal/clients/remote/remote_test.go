package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name":"boots"}`))
	}))
	defer server.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := GetJSON(context.Background(), server.Client(), "TestAPI", server.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, "boots", out.Name)
}

func TestGetJSONBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer server.Close()

	var out struct{}
	err := GetJSON(context.Background(), server.Client(), "TestAPI", server.URL, &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindBadStatus, apiErr.Kind)
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "TestAPI")
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":`))
	}))
	defer server.Close()

	var out struct{}
	err := GetJSON(context.Background(), server.Client(), "TestAPI", server.URL, &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindMalformed, apiErr.Kind)
}

func TestGetJSONTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out struct{}
	err := GetJSON(ctx, server.Client(), "TestAPI", server.URL, &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTimeout, apiErr.Kind)
}

func TestClassifyDeadlineExceeded(t *testing.T) {
	apiErr := Classify("TestAPI", context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, apiErr.Kind)
	assert.True(t, errors.Is(apiErr, context.DeadlineExceeded))
}
