package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the credential is missing, expired, or revoked.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the server rejected an action the client thought
	// was permitted, typically an owner-only mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced entity no longer exists.
	ErrNotFound = errors.New("not found")
)

// Error is the normalized failure of an API call.
type Error struct {
	// Status is the HTTP status code, or 0 when the request never
	// reached the server.
	Status int
	// Message is the server-supplied message, if any.
	Message string
	// Transport marks network-level failures (host unreachable,
	// connection reset) as opposed to server rejections.
	Transport bool

	err error
}

func (e *Error) Error() string {
	switch {
	case e.Transport:
		return fmt.Sprintf("api: network failure: %v", e.err)
	case e.Message != "":
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("api: %d", e.Status)
	}
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return e.err
}

// UserMessage returns the text a view should display: the server message
// when present, a generic fallback otherwise.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Transport {
		return "Network unreachable. Check your connection and try again."
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case http.StatusForbidden:
		return "You don't have permission to do that."
	case http.StatusNotFound:
		return "That no longer exists. It may have been deleted."
	}
	return "Something went wrong. Please try again."
}

// UserMessage extracts a display message from any error, preferring
// server-supplied text.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Something went wrong. Please try again."
}

// IsUnauthorized reports whether err represents a rejected credential.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
