package httpclient

import (
	"errors"
	"net/http"
)

// Error is the single failure value returned by Client. Its Error() is the
// human readable message only.
type Error struct {
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func newError(method, url string, status int, message string, cause error) *Error {
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Message:    message,
		Err:        cause,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Message returns the human readable message of the *Error wrapped in err,
// or err.Error() when there is none.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
