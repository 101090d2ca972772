package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/session"
)

// LoadSession is middleware that loads the browser's session into the Echo context
func LoadSession(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := mgr.Load(c)
			if err != nil {
				return err
			}

			slog.Debug("session loaded",
				"path", c.Request().URL.Path,
				"session_id", s.ID(),
				"state", s.State(),
			)

			session.WithSession(c, s)
			return next(c)
		}
	}
}
