package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrTimeout marks a request that ran past the configured deadline.
var ErrTimeout = errors.New("request timed out, please try again")

// ErrNotAuthenticated marks calls made without a stored token or
// rejected by the server with 401.
var ErrNotAuthenticated = errors.New("not authenticated, please log in again")

// APIError carries the server's error body for non-2xx responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody is the wire shape of API error responses.
type errorBody struct {
	Message string `json:"message"`
}

// errorFromResponse turns a non-2xx response into an error. A 401 on a
// protected call means the stored token is dead, regardless of the body.
// On open calls such as login the server message is the error the user
// needs to see, so the body wins there.
func errorFromResponse(resp *http.Response, protected bool) error {
	if protected && resp.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrNotAuthenticated
		}
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("request error (status %d)", resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Message}
}

func translateTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("request error: %w", err)
}
