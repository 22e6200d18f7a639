package github

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationFailed is matched by every AuthenticationError
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrPaginationLoop is returned when a next link points at a page already fetched
	ErrPaginationLoop = errors.New("pagination loop detected")
	// ErrTooManyPages is returned when the page ceiling is reached
	ErrTooManyPages = errors.New("too many pages")
)

// AuthenticationError reports a failed /user lookup
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAuthenticationFailed, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// RemoteRequestFailedError reports a non-2xx response from the API
type RemoteRequestFailedError struct {
	Status  int
	URL     string
	Message string
}

func (e *RemoteRequestFailedError) Error() string {
	msg := fmt.Sprintf("API request failed: status %d", e.Status)
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// MalformedResponseError reports a body that is not the expected JSON shape
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response body from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status of a RemoteRequestFailedError in err's chain
func StatusCode(err error) (int, bool) {
	var remoteErr *RemoteRequestFailedError
	if errors.As(err, &remoteErr) {
		return remoteErr.Status, true
	}
	return 0, false
}
