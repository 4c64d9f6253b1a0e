// Package qrlink resolves scanned QR payloads into fee-update requests.
package qrlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"hostel-client/internal/gateway"
)

// State is the resolver's position in the scan lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateScanning    State = "scanning"
	StateParsing     State = "parsing"
	StateValidating  State = "validating"
	StateDispatching State = "dispatching"
	StateSuccess     State = "success"
	StateFailed      State = "failed"
)

// User-facing terminal messages. QR content errors are decided before any
// network call is attempted.
const (
	MsgNotAURL        = "Scanned data is not a valid URL."
	MsgNotFeeLink     = "QR code is not a fee update link."
	MsgUpdated        = "Fee status updated."
	MsgNetworkFailure = "Network error while updating fee status."
)

// feeUpdatePath is the route segment a scanned URL must contain.
const feeUpdatePath = "/api/admin/update-fee-status"

// Dispatcher issues the resolved fee-update request.
type Dispatcher interface {
	Put(ctx context.Context, absoluteURL string) error
}

// Outcome is the result of handling one decode event.
type Outcome struct {
	State   State
	Message string
}

// Resolver drives the scan state machine. One decode is processed at a
// time: further decode events are rejected until Reset re-arms the scanner.
type Resolver struct {
	dispatcher Dispatcher
	apiBase    *url.URL
	logger     *logrus.Logger

	mu      sync.Mutex
	state   State
	scanned bool
	message string
}

// NewResolver creates a resolver that rewrites loopback hosts to apiBase.
func NewResolver(dispatcher Dispatcher, apiBase string, logger *logrus.Logger) (*Resolver, error) {
	base, err := url.Parse(apiBase)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", apiBase, err)
	}
	return &Resolver{
		dispatcher: dispatcher,
		apiBase:    base,
		logger:     logger,
		state:      StateIdle,
	}, nil
}

// Arm moves the resolver from Idle to Scanning.
func (r *Resolver) Arm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateIdle {
		r.state = StateScanning
	}
}

// State returns the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Message returns the last terminal message, empty while in flight.
func (r *Resolver) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Reset re-arms the scanner after a terminal state. Only an explicit user
// action calls this, never the resolver itself: an invalid or expired code
// would otherwise trigger a decode storm.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanned = false
	r.message = ""
	r.state = StateScanning
}

// HandleScan processes one decoded QR payload. Re-entrant decode events are
// dropped while a scan is being resolved. Each scan performs at most one
// network attempt; there are no retries.
func (r *Resolver) HandleScan(ctx context.Context, data string) Outcome {
	r.mu.Lock()
	if r.scanned || (r.state != StateScanning && r.state != StateIdle) {
		out := Outcome{State: r.state, Message: r.message}
		r.mu.Unlock()
		return out
	}
	r.scanned = true
	r.state = StateParsing
	r.mu.Unlock()

	parsed, err := url.Parse(data)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return r.fail(MsgNotAURL)
	}

	r.setState(StateValidating)
	if !strings.Contains(parsed.Path, feeUpdatePath) {
		return r.fail(MsgNotFeeLink)
	}

	resolved := r.rewriteLoopback(parsed)

	r.setState(StateDispatching)
	r.logger.WithField("url", resolved.String()).Info("dispatching fee update")
	if err := r.dispatcher.Put(ctx, resolved.String()); err != nil {
		return r.fail(failureMessage(err))
	}
	return r.succeed(MsgUpdated)
}

// rewriteLoopback rewrites protocol, hostname and port to the configured
// API base when the scanned code encodes a loopback address, preserving
// path and query. QR codes are minted by a backend that knows itself only
// as localhost; the client resolves them against its real base URL.
func (r *Resolver) rewriteLoopback(u *url.URL) *url.URL {
	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return u
	}

	rewritten := *u
	rewritten.Scheme = r.apiBase.Scheme
	if port := r.apiBase.Port(); port != "" {
		rewritten.Host = r.apiBase.Hostname() + ":" + port
	} else {
		rewritten.Host = r.apiBase.Hostname()
	}
	return &rewritten
}

func failureMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return MsgNetworkFailure
}

func (r *Resolver) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Resolver) fail(message string) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateFailed
	r.message = message
	return Outcome{State: StateFailed, Message: message}
}

func (r *Resolver) succeed(message string) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateSuccess
	r.message = message
	return Outcome{State: StateSuccess, Message: message}
}
