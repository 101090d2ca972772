package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/auth"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	authview "github.com/loganlanou/reqres-dashboard/views/auth"
)

// AuthHandler handles login and logout routes
type AuthHandler struct {
	auth    *auth.Service
	siteURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, siteURL string) *AuthHandler {
	return &AuthHandler{
		auth:    authService,
		siteURL: siteURL,
	}
}

// HandleLoginForm renders the empty login form
func (h *AuthHandler) HandleLoginForm(c echo.Context) error {
	return renderOK(c, h.siteURL, "Login", authview.Login(authview.LoginForm{}))
}

// HandleLogin validates the form, exchanges it for a token and signs the
// browser in. Any failure re-renders the form with the messages inline.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var creds auth.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	if err := creds.Validate(); err != nil {
		return h.renderLoginError(c, creds, auth.FieldErrors(err))
	}

	ctx := c.Request().Context()
	token, err := h.auth.Login(ctx, creds)
	if err != nil {
		slog.Warn("login failed", "email", creds.Email, "error", err)
		return h.renderLoginError(c, creds, map[string]string{"general": httpclient.Message(err)})
	}

	if err := session.FromContext(c).Login(ctx, token); err != nil {
		return h.renderLoginError(c, creds, map[string]string{"general": err.Error()})
	}

	slog.Info("user logged in", "email", creds.Email)
	setFlash(c, "success", "Login successful")
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) renderLoginError(c echo.Context, creds auth.Credentials, errs map[string]string) error {
	form := authview.LoginForm{Email: creds.Email, Errors: errs}
	return RenderPage(c, http.StatusUnprocessableEntity, h.siteURL, "Login", authview.Login(form))
}

// HandleLogoutConfirm asks before signing out
func (h *AuthHandler) HandleLogoutConfirm(c echo.Context) error {
	return renderOK(c, h.siteURL, "Logout", authview.LogoutConfirm())
}

// HandleLogout clears the session and returns to the login page
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	s := session.FromContext(c)
	s.Logout(c.Request().Context())

	slog.Info("user logged out", "session_id", s.ID())
	return c.Redirect(http.StatusFound, "/login")
}
