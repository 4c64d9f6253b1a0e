package qrlink

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-client/internal/gateway"
)

// mockDispatcher records dispatched URLs and returns a configured error.
type mockDispatcher struct {
	calls []string
	err   error
}

func (m *mockDispatcher) Put(_ context.Context, absoluteURL string) error {
	m.calls = append(m.calls, absoluteURL)
	return m.err
}

func newTestResolver(t *testing.T, dispatcher Dispatcher, apiBase string) *Resolver {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewResolver(dispatcher, apiBase, logger)
	require.NoError(t, err)
	r.Arm()
	return r
}

func TestHandleScan_NotAURL(t *testing.T) {
	dispatcher := &mockDispatcher{}
	r := newTestResolver(t, dispatcher, "https://api.example.com")

	out := r.HandleScan(context.Background(), "not a url")

	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, MsgNotAURL, out.Message)
	assert.Empty(t, dispatcher.calls, "no network call for invalid URLs")
}

func TestHandleScan_WrongRoute(t *testing.T) {
	dispatcher := &mockDispatcher{}
	r := newTestResolver(t, dispatcher, "https://api.example.com")

	out := r.HandleScan(context.Background(), "http://localhost:3000/api/other-route")

	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, MsgNotFeeLink, out.Message)
	assert.Empty(t, dispatcher.calls)
}

func TestHandleScan_LoopbackRewrite(t *testing.T) {
	testCases := []struct {
		name     string
		scanned  string
		apiBase  string
		expected string
	}{
		{
			name:     "localhost rewritten to API base",
			scanned:  "http://localhost:3000/api/admin/update-fee-status?app=7",
			apiBase:  "https://api.example.com",
			expected: "https://api.example.com/api/admin/update-fee-status?app=7",
		},
		{
			name:     "127.0.0.1 rewritten, base port preserved",
			scanned:  "http://127.0.0.1/api/admin/update-fee-status?app=12",
			apiBase:  "http://10.0.0.4:8080",
			expected: "http://10.0.0.4:8080/api/admin/update-fee-status?app=12",
		},
		{
			name:     "non-loopback host dispatched unmodified",
			scanned:  "https://backend.campus.edu/api/admin/update-fee-status?app=3",
			apiBase:  "https://api.example.com",
			expected: "https://backend.campus.edu/api/admin/update-fee-status?app=3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &mockDispatcher{}
			r := newTestResolver(t, dispatcher, tc.apiBase)

			out := r.HandleScan(context.Background(), tc.scanned)

			assert.Equal(t, StateSuccess, out.State)
			assert.Equal(t, MsgUpdated, out.Message)
			require.Len(t, dispatcher.calls, 1)
			assert.Equal(t, tc.expected, dispatcher.calls[0])
		})
	}
}

func TestHandleScan_DispatchFailures(t *testing.T) {
	t.Run("backend message surfaced verbatim", func(t *testing.T) {
		dispatcher := &mockDispatcher{err: &gateway.APIError{StatusCode: 404, Message: "Application not found"}}
		r := newTestResolver(t, dispatcher, "https://api.example.com")

		out := r.HandleScan(context.Background(), "http://localhost:3000/api/admin/update-fee-status?app=7")

		assert.Equal(t, StateFailed, out.State)
		assert.Equal(t, "Application not found", out.Message)
	})

	t.Run("transport failure uses generic message", func(t *testing.T) {
		dispatcher := &mockDispatcher{err: errors.New("dial tcp: connection refused")}
		r := newTestResolver(t, dispatcher, "https://api.example.com")

		out := r.HandleScan(context.Background(), "http://localhost:3000/api/admin/update-fee-status?app=7")

		assert.Equal(t, StateFailed, out.State)
		assert.Equal(t, MsgNetworkFailure, out.Message)
		assert.Len(t, dispatcher.calls, 1, "single attempt, no retry")
	})
}

func TestHandleScan_GuardAndReset(t *testing.T) {
	dispatcher := &mockDispatcher{}
	r := newTestResolver(t, dispatcher, "https://api.example.com")

	first := r.HandleScan(context.Background(), "not a url")
	assert.Equal(t, StateFailed, first.State)

	// Re-entrant decode events are dropped until the user re-arms.
	second := r.HandleScan(context.Background(), "http://localhost:3000/api/admin/update-fee-status?app=7")
	assert.Equal(t, StateFailed, second.State)
	assert.Equal(t, MsgNotAURL, second.Message)
	assert.Empty(t, dispatcher.calls)

	r.Reset()
	assert.Equal(t, StateScanning, r.State())
	assert.Empty(t, r.Message())

	third := r.HandleScan(context.Background(), "http://localhost:3000/api/admin/update-fee-status?app=7")
	assert.Equal(t, StateSuccess, third.State)
	assert.Len(t, dispatcher.calls, 1)
}
