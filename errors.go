package sidemail

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingParams is returned when a required request payload is nil.
	ErrMissingParams = errors.New("sidemail: request parameters are required")
	// ErrStatus matches every [Error] carrying an HTTP status.
	ErrStatus = errors.New("sidemail: unexpected status code")
	// ErrUnauthorized is matched by errors for 401 and 403 responses.
	ErrUnauthorized = errors.New("sidemail: invalid API key")
	// ErrNotFound is matched by errors for 404 responses.
	ErrNotFound = errors.New("sidemail: not found")
	// ErrRateLimit is matched by errors for 429 responses.
	ErrRateLimit = errors.New("sidemail: rate limit exceeded")
)

// Error is returned when the API responds with a non-2xx status.
type Error struct {
	// Message is the developer message returned by the API.
	Message string `json:"developerMessage"`
	// HTTPStatus is the response status code, zero for errors built with [NewError].
	HTTPStatus int `json:"-"`
	// ErrorCode is the machine readable code, e.g. "parameters-invalid".
	ErrorCode string `json:"errorCode"`
	// MoreInfo links to the documentation for ErrorCode.
	MoreInfo string `json:"moreInfo"`
}

// NewError returns an error carrying only a message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("sidemail: ")
	b.WriteString(e.Message)

	var details []string
	if e.HTTPStatus != 0 {
		details = append(details, fmt.Sprintf("status %d", e.HTTPStatus))
	}
	if e.ErrorCode != "" {
		details = append(details, "code "+e.ErrorCode)
	}
	if len(details) > 0 {
		b.WriteString(" (" + strings.Join(details, ", ") + ")")
	}
	if e.MoreInfo != "" {
		b.WriteString(" see " + e.MoreInfo)
	}

	return b.String()
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	if e.HTTPStatus == 0 {
		return false
	}
	if target == ErrStatus {
		return true
	}

	switch e.HTTPStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		return target == ErrUnauthorized
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimit
	}

	return false
}
