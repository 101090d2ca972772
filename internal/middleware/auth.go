package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/session"
)

// Allow is the whole access rule: any token gets in, whether or not its
// profile has loaded.
func Allow(token string) bool {
	return token != ""
}

// RequireToken redirects to loginPath unless the session holds a token.
// The guarded handler never runs for an anonymous browser.
func RequireToken(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Allow(session.FromContext(c).Token()) {
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated keeps signed-in browsers off guest-only pages
// such as the login form.
func RedirectAuthenticated(landingPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Allow(session.FromContext(c).Token()) {
				return c.Redirect(http.StatusFound, landingPath)
			}
			return next(c)
		}
	}
}
