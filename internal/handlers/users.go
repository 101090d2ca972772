package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
	userview "github.com/loganlanou/reqres-dashboard/views/users"
	"golang.org/x/sync/errgroup"
)

const (
	msgFetchFailed  = "Failed to fetch user details"
	msgNotFound     = "User not found"
	msgListFailed   = "Failed to fetch users"
	msgUpdated      = "User updated successfully"
	msgUpdateFailed = "Failed to update user"
	msgDeleted      = "User deleted successfully"
	msgDeleteFailed = "Failed to delete user"

	defaultProfileWait = 3 * time.Second
)

type UserHandler struct {
	users       *users.Service
	siteURL     string
	profileWait time.Duration
}

func NewUserHandler(userService *users.Service, siteURL string) *UserHandler {
	return &UserHandler{
		users:       userService,
		siteURL:     siteURL,
		profileWait: defaultProfileWait,
	}
}

// WithProfileWait bounds how long the dashboard waits for a pending
// profile fetch before rendering without the header.
func (h *UserHandler) WithProfileWait(d time.Duration) *UserHandler {
	h.profileWait = d
	return h
}

// HandleDashboard shows one page of the directory. The page and the
// signed-in profile load concurrently.
func (h *UserHandler) HandleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	page := users.ClampPage(c.QueryParam("page"))
	s := session.FromContext(c)

	data := userview.DashboardData{Page: page, TotalPages: 1}

	var g errgroup.Group
	g.Go(func() error {
		list, err := h.users.List(ctx, page)
		if err != nil {
			slog.Error("error fetching users", "page", page, "error", err)
			data.Error = msgListFailed
			return nil
		}
		data.Users = list.Data
		data.TotalPages = list.TotalPages
		return nil
	})
	g.Go(func() error {
		waitCtx, cancel := context.WithTimeout(ctx, h.profileWait)
		defer cancel()

		snap, err := s.Await(waitCtx)
		if err != nil {
			slog.Debug("rendering dashboard before profile arrived", "state", snap.State)
		}
		data.Profile = snap.User
		return nil
	})
	_ = g.Wait()

	return renderOK(c, h.siteURL, "Dashboard", userview.Dashboard(data))
}

// HandleUserDetail shows a single user
func (h *UserHandler) HandleUserDetail(c echo.Context) error {
	u, status, msg := h.loadUser(c)
	if u == nil {
		return RenderPage(c, status, h.siteURL, "User Details", userview.Message(msg, status != http.StatusNotFound))
	}
	return renderOK(c, h.siteURL, u.FullName(), userview.Detail(*u))
}

// HandleEditForm shows the edit form prefilled with the current values
func (h *UserHandler) HandleEditForm(c echo.Context) error {
	u, status, msg := h.loadUser(c)
	if u == nil {
		return RenderPage(c, status, h.siteURL, "Edit User", userview.Message(msg, status != http.StatusNotFound))
	}

	form := users.Update{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	return renderOK(c, h.siteURL, "Edit User", userview.Edit(u.ID, form, ""))
}

// HandleUpdateUser saves the edit form
func (h *UserHandler) HandleUpdateUser(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		return RenderPage(c, http.StatusNotFound, h.siteURL, "Edit User", userview.Message(msgNotFound, false))
	}

	var form users.Update
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	result, err := h.users.Update(c.Request().Context(), id, form)
	if err != nil {
		slog.Error("error updating user", "user_id", id, "error", err)
		return RenderPage(c, http.StatusBadGateway, h.siteURL, "Edit User", userview.Edit(id, form, msgUpdateFailed))
	}

	slog.Info("user updated", "user_id", id, "updated_at", helpers.FormatDateTime(result.UpdatedAt))
	setFlash(c, "success", msgUpdated)
	return c.Redirect(http.StatusFound, helpers.UserPath(id))
}

// HandleDeleteConfirm asks before deleting
func (h *UserHandler) HandleDeleteConfirm(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		return RenderPage(c, http.StatusNotFound, h.siteURL, "Delete User", userview.Message(msgNotFound, false))
	}
	return renderOK(c, h.siteURL, "Delete User", userview.DeleteConfirm(id))
}

// HandleDeleteUser deletes the user and returns to the dashboard
func (h *UserHandler) HandleDeleteUser(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		setFlash(c, "error", msgDeleteFailed)
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		slog.Error("error deleting user", "user_id", id, "error", err)
		setFlash(c, "error", msgDeleteFailed)
		return c.Redirect(http.StatusFound, helpers.UserPath(id))
	}

	slog.Info("user deleted", "user_id", id)
	setFlash(c, "success", msgDeleted)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// loadUser fetches the user named by the :id param. On failure it returns
// the status and message to show instead.
func (h *UserHandler) loadUser(c echo.Context) (*users.Record, int, string) {
	id, ok := parseUserID(c)
	if !ok {
		return nil, http.StatusNotFound, msgNotFound
	}

	u, err := h.users.Get(c.Request().Context(), id)
	switch {
	case httpclient.IsNotFound(err):
		return nil, http.StatusNotFound, msgNotFound
	case err != nil:
		slog.Error("error fetching user", "user_id", id, "error", err)
		return nil, http.StatusBadGateway, msgFetchFailed
	}
	return u, http.StatusOK, ""
}

func parseUserID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
