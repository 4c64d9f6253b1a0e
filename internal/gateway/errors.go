package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// ErrUnreachable wraps transport-level failures where no response arrived.
var ErrUnreachable = errors.New("unable to reach server")

// APIError is a non-2xx response from the backend. Message carries the
// backend-provided message verbatim when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode())
	}
	return apiErr
}

// UserMessage converts a failure into the text shown to the user: the
// backend message verbatim for non-2xx responses, a generic alert for
// transport failures and for requests the open circuit breaker shed, and
// the error text for anything else.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnreachable) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "Unable to reach server."
	}
	return err.Error()
}
