package session

import (
	"errors"

	"github.com/labstack/echo/v4"
)

const contextKey = "session"

// ErrNoProvider means a handler asked for the session on a route the
// session middleware does not cover.
var ErrNoProvider = errors.New("session: no session loaded for this request")

func WithSession(c echo.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the request's session and panics with ErrNoProvider
// when none was loaded.
func FromContext(c echo.Context) *Session {
	s, ok := Lookup(c)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}

func Lookup(c echo.Context) (*Session, bool) {
	s, ok := c.Get(contextKey).(*Session)
	return s, ok && s != nil
}
