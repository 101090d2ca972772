package handlers

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/views/layout"
)

const flashCookieName = "dashboard_flash"

// setFlash stores a message for the next page rendered after a redirect.
func setFlash(c echo.Context, kind, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("ENVIRONMENT") == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

func clearFlash(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("ENVIRONMENT") == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// popFlash returns the pending message, if any, and clears it.
func popFlash(c echo.Context) *layout.Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	clearFlash(c)

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, ok := strings.Cut(decoded, "|")
	if !ok || message == "" {
		return nil
	}
	if kind != "error" {
		kind = "success"
	}

	return &layout.Flash{Kind: kind, Message: message}
}
