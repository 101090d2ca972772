package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/session"
)

// Context holds authentication data to be passed to templates
type Context struct {
	IsAuthenticated bool
	State           session.State
	User            *session.Profile
}

// GetAuthContext reads the session loaded by middleware. Requests without
// a session are treated as anonymous.
func GetAuthContext(c echo.Context) *Context {
	s, ok := session.Lookup(c)
	if !ok {
		return &Context{State: session.Anonymous}
	}

	snap := s.Snapshot()
	return &Context{
		IsAuthenticated: snap.HasToken(),
		State:           snap.State,
		User:            snap.User,
	}
}

// IsAuthenticated reports whether the request's session holds a token.
func IsAuthenticated(c echo.Context) bool {
	return GetAuthContext(c).IsAuthenticated
}
