package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-client/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second
	cfg.API.RatePerSec = 1000
	cfg.API.RateBurst = 100

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(cfg, logger)
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/signin", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated) // older backend versions answer 201
		w.Write([]byte(`{"user":{"id":5,"name":"Amir","student_id":"S-22","email":"amir@example.com"}}`))
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).SignIn(context.Background(), "amir@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "S-22", user.StudentID, "snake_case student id accepted")
}

func TestSignIn_BackendMessageSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SignIn(context.Background(), "amir@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Equal(t, "Invalid email or password", UserMessage(err))
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server.URL)
	server.Close() // nothing is listening anymore

	_, err := client.Hostels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
	assert.Equal(t, "Unable to reach server.", UserMessage(err))
}

func TestHostels_NormalizesSparsePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Older backend versions omit rooms and the aggregate lists.
		w.Write([]byte(`[{"id":1,"name":"North","totalCapacity":5}]`))
	}))
	defer server.Close()

	hostels, err := newTestClient(server.URL).Hostels(context.Background())
	require.NoError(t, err)
	require.Len(t, hostels, 1)

	assert.NotNil(t, hostels[0].Rooms)
	assert.NotNil(t, hostels[0].ApprovedUsers)
	assert.NotNil(t, hostels[0].PendingUsers)
	assert.NotNil(t, hostels[0].RejectedUsers)
}

func TestErrorBodyWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	err := newTestClient(server.URL).ApplyHostel(context.Background(), 5, 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 502", apiErr.Message)
}

func TestOpenBreakerShowsGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// Three consecutive server-side failures open the breaker.
	for i := 0; i < 3; i++ {
		_, err := client.Hostels(context.Background())
		require.Error(t, err)
	}

	_, err := client.Hostels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, "Unable to reach server.", UserMessage(err))
}

func TestPut_AbsoluteURLBypassesBase(t *testing.T) {
	var captured *http.Request
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Write([]byte(`{"message":"Fee status updated"}`))
	}))
	defer target.Close()

	// The client is configured against a different base entirely.
	client := newTestClient("http://unreachable.invalid")
	err := client.Put(context.Background(), target.URL+"/api/admin/update-fee-status?app=7")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPut, captured.Method)
	assert.Equal(t, "/api/admin/update-fee-status", captured.URL.Path)
	assert.Equal(t, "app=7", captured.URL.RawQuery)
}
