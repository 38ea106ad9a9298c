package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	mem := storage.NewMemoryStore()
	return New(srv.URL, mem, WithRateLimit(0)), mem
}

func TestRequest_AttachesBearerAndDeviceHeaders(t *testing.T) {
	var gotAuth, gotDeviceID, gotDeviceName string
	c, mem := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDeviceID = r.Header.Get("X-Device-ID")
		gotDeviceName = r.Header.Get("X-Device-Name")
		w.Write([]byte(`{"ok": true}`))
	})
	require.NoError(t, mem.Set(storage.KeyToken, "tok-1"))

	body, err := c.Request(context.Background(), "GET", "/api/v1/profile", nil, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotDeviceID)
	assert.Equal(t, "courtside", gotDeviceName)

	// The device ID is persisted and stable across calls.
	persisted, err := mem.Get(storage.KeyDeviceID)
	require.NoError(t, err)
	assert.Equal(t, gotDeviceID, persisted)

	_, err = c.Request(context.Background(), "GET", "/api/v1/profile", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, persisted, gotDeviceID)
}

func TestRequest_NoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := c.Request(context.Background(), "GET", "/api/v1/venues", nil, nil)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequest_UnauthorizedClearsPersistedPair(t *testing.T) {
	c, mem := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	})
	require.NoError(t, mem.Set(storage.KeyToken, "stale"))
	require.NoError(t, mem.Set(storage.KeyUser, `{"id":"u-1"}`))

	_, err := c.Request(context.Background(), "GET", "/api/v1/bookings", nil, nil)

	assert.ErrorIs(t, err, ErrAuthExpired)
	_, getErr := mem.Get(storage.KeyToken)
	assert.ErrorIs(t, getErr, storage.ErrKeyNotFound)
	_, getErr = mem.Get(storage.KeyUser)
	assert.ErrorIs(t, getErr, storage.ErrKeyNotFound)
}

func TestRequest_BackendErrorCarriesMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "slot already booked"}`))
	})

	_, err := c.Request(context.Background(), "POST", "/api/v1/bookings", map[string]int{"court_id": 1}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "slot already booked", apiErr.Message)
}

func TestRequest_BackendErrorFieldVariant(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "date is required"}`))
	})

	_, err := c.Request(context.Background(), "GET", "/api/v1/bookings", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "date is required", apiErr.Message)
}

func TestRequest_GenericMessageWhenBodyIsNotJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	})

	_, err := c.Request(context.Background(), "GET", "/api/v1/bookings", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed", apiErr.Message)
}

func TestRequest_SendsBodyAndQuery(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewDecoder(r.Body).Decode(&gotBody)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{}`))
	})

	query := url.Values{}
	query.Set("date", "2024-03-01")
	_, err := c.Request(context.Background(), "POST", "/api/v1/bookings", map[string]string{"note": "evening"}, query)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", gotQuery.Get("date"))
	assert.Equal(t, "evening", gotBody["note"])
}
