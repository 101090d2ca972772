package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/reqresfake"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteURL = "http://localhost:8000"

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func flashCookie(t *testing.T, rec interface{ Result() *http.Response }) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashCookieName && ck.MaxAge >= 0 {
			return ck
		}
	}
	return nil
}

func TestHandleLoginForm(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)
	c, rec := NewTestContext(http.MethodGet, "/login", nil)

	require.NoError(t, h.HandleLoginForm(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="email"`)
	assert.Contains(t, rec.Body.String(), `name="password"`)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}

func TestHandleLogin_ValidationErrors(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	tests := []struct {
		name string
		form url.Values
		want []string
	}{
		{"empty form", url.Values{"email": {""}, "password": {""}}, []string{"Email is required", "Password is required"}},
		{"bad email", url.Values{"email": {"eve.holt"}, "password": {"cityslicka"}}, []string{"Invalid email address"}},
		{"missing password", url.Values{"email": {"eve.holt@reqres.in"}}, []string{"Password is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := NewTestContext(http.MethodPost, "/login", tt.form)
			s := SetTestSession(t, c, mgr, "")

			require.NoError(t, h.HandleLogin(c))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			for _, msg := range tt.want {
				assert.Contains(t, rec.Body.String(), msg)
			}
			assert.Empty(t, s.Token())
		})
	}
}

func TestHandleLogin_APIError(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodPost, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"secret"},
	})
	s := SetTestSession(t, c, mgr, "")

	require.NoError(t, h.HandleLogin(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "request failed with status 400: user not found")
	assert.Contains(t, rec.Body.String(), `value="nobody@example.com"`)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Empty(t, s.Token())
}

func TestHandleLogin_Success(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodPost, "/login", url.Values{
		"email":    {reqresfake.EveEmail},
		"password": {"cityslicka"},
	})
	s := SetTestSession(t, c, mgr, "")

	require.NoError(t, h.HandleLogin(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, reqresfake.Token, s.Token())
	assert.NotNil(t, flashCookie(t, rec))
}

func TestHandleLogout(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodGet, "/logout", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)
	require.NoError(t, h.HandleLogoutConfirm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to log out?")

	c, rec = NewTestContext(http.MethodPost, "/logout", nil)
	s := SetTestSession(t, c, mgr, reqresfake.Token)
	require.NoError(t, h.HandleLogout(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, s.Token())
	assert.Nil(t, s.Snapshot().User)
}

func TestHandleDashboard(t *testing.T) {
	api := NewTestAPI(t, reqresfake.WithUserCount(20))
	h := NewUserHandler(users.NewService(api.Client), siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodGet, "/dashboard?page=2", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)

	require.NoError(t, h.HandleDashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	profile, _ := api.Fake.User(2)
	assert.Contains(t, body, templ.EscapeString(profile.FullName()))

	all := api.Fake.Users()
	for _, u := range all[6:12] {
		assert.Contains(t, body, `data-user-id="`+strconv.Itoa(u.ID)+`"`)
	}
	assert.NotContains(t, body, `data-user-id="13"`)

	assert.Contains(t, body, `href="/dashboard">1</a>`)
	assert.Contains(t, body, `aria-current="page">2</a>`)
	assert.Contains(t, body, `href="/dashboard?page=3">3</a>`)
	assert.NotContains(t, body, `>4</a>`)
	assert.Contains(t, body, `">Previous</a>`)
	assert.Contains(t, body, `">Next</a>`)
}

func TestHandleDashboard_FirstAndLastPage(t *testing.T) {
	api := NewTestAPI(t, reqresfake.WithUserCount(12))
	h := NewUserHandler(users.NewService(api.Client), siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodGet, "/dashboard?page=0", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)
	require.NoError(t, h.HandleDashboard(c))
	assert.Contains(t, rec.Body.String(), `aria-disabled="true">Previous</span>`)
	assert.Contains(t, rec.Body.String(), `">Next</a>`)

	c, rec = NewTestContext(http.MethodGet, "/dashboard?page=2", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)
	require.NoError(t, h.HandleDashboard(c))
	assert.Contains(t, rec.Body.String(), `aria-disabled="true">Next</span>`)
}

func TestHandleDashboard_ListFailure(t *testing.T) {
	api := NewTestAPI(t)
	broken := users.NewService(httpclient.New("http://127.0.0.1:1/api", httpclient.WithTimeout(time.Second)))
	h := NewUserHandler(broken, siteURL)
	mgr := NewTestSessionManager(t, api.Auth)

	c, rec := NewTestContext(http.MethodGet, "/dashboard", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)

	require.NoError(t, h.HandleDashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch users")
}

func TestHandleDashboard_ProfileStillLoading(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL).WithProfileWait(20 * time.Millisecond)

	release := make(chan struct{})
	defer close(release)
	slow := session.ProfileFetcherFunc(func(ctx context.Context, token string) (*session.Profile, error) {
		<-release
		return &session.Profile{Name: "Late Profile"}, nil
	})
	mgr := NewTestSessionManager(t, slow)

	c, rec := NewTestContext(http.MethodGet, "/dashboard", nil)
	SetTestSession(t, c, mgr, reqresfake.Token)

	require.NoError(t, h.HandleDashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Late Profile")
	assert.NotContains(t, rec.Body.String(), "User Avatar")
}

func TestHandleUserDetail(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL)

	c, rec := NewTestContext(http.MethodGet, "/users/4", nil)
	withID(c, "4")
	require.NoError(t, h.HandleUserDetail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Eve Holt")
	assert.Contains(t, rec.Body.String(), reqresfake.EveEmail)
	assert.Contains(t, rec.Body.String(), `href="/users/4/edit"`)
	assert.Contains(t, rec.Body.String(), `href="/users/4/delete"`)
}

func TestHandleUserDetail_Errors(t *testing.T) {
	api := NewTestAPI(t)
	broken := users.NewService(httpclient.New("http://127.0.0.1:1/api", httpclient.WithTimeout(time.Second)))

	tests := []struct {
		name       string
		svc        *users.Service
		id         string
		wantStatus int
		wantText   string
	}{
		{"missing user", users.NewService(api.Client), "999", http.StatusNotFound, "User not found"},
		{"non numeric id", users.NewService(api.Client), "abc", http.StatusNotFound, "User not found"},
		{"api unreachable", broken, "2", http.StatusBadGateway, "Failed to fetch user details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(tt.svc, siteURL)
			c, rec := NewTestContext(http.MethodGet, "/users/"+tt.id, nil)
			withID(c, tt.id)

			require.NoError(t, h.HandleUserDetail(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantText)
		})
	}
}

func TestHandleEditForm(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL)

	c, rec := NewTestContext(http.MethodGet, "/users/4/edit", nil)
	withID(c, "4")
	require.NoError(t, h.HandleEditForm(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="first_name" value="Eve"`)
	assert.Contains(t, rec.Body.String(), `name="last_name" value="Holt"`)
	assert.Contains(t, rec.Body.String(), `name="email" value="eve.holt@reqres.in"`)
}

func TestHandleUpdateUser(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL)

	c, rec := NewTestContext(http.MethodPost, "/users/4/edit", url.Values{
		"first_name": {"Evelyn"},
		"last_name":  {"Holt"},
		"email":      {"evelyn.holt@reqres.in"},
	})
	withID(c, "4")
	require.NoError(t, h.HandleUpdateUser(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/4", rec.Header().Get(echo.HeaderLocation))

	flash := flashCookie(t, rec)
	require.NotNil(t, flash)
	decoded, err := url.QueryUnescape(flash.Value)
	require.NoError(t, err)
	assert.Equal(t, "success|User updated successfully", decoded)

	stored, ok := api.Fake.User(4)
	require.True(t, ok)
	assert.Equal(t, "Evelyn", stored.FirstName)
	assert.Equal(t, "evelyn.holt@reqres.in", stored.Email)
}

func TestHandleUpdateUser_Failure(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL)

	c, rec := NewTestContext(http.MethodPost, "/users/999/edit", url.Values{
		"first_name": {"Nobody"},
		"last_name":  {"Here"},
		"email":      {"nobody@reqres.in"},
	})
	withID(c, "999")
	require.NoError(t, h.HandleUpdateUser(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to update user")
	assert.Contains(t, rec.Body.String(), `value="Nobody"`)
}

func TestHandleDeleteUser(t *testing.T) {
	api := NewTestAPI(t)
	h := NewUserHandler(users.NewService(api.Client), siteURL)

	c, rec := NewTestContext(http.MethodGet, "/users/3/delete", nil)
	withID(c, "3")
	require.NoError(t, h.HandleDeleteConfirm(c))
	assert.Contains(t, rec.Body.String(), "Confirm Deletion")
	assert.Contains(t, rec.Body.String(), `action="/users/3/delete"`)

	c, rec = NewTestContext(http.MethodPost, "/users/3/delete", nil)
	withID(c, "3")
	require.NoError(t, h.HandleDeleteUser(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	_, ok := api.Fake.User(3)
	assert.False(t, ok)

	// A second delete fails and goes back to the detail page
	c, rec = NewTestContext(http.MethodPost, "/users/3/delete", nil)
	withID(c, "3")
	require.NoError(t, h.HandleDeleteUser(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/3", rec.Header().Get(echo.HeaderLocation))
	flash := flashCookie(t, rec)
	require.NotNil(t, flash)
	decoded, _ := url.QueryUnescape(flash.Value)
	assert.Equal(t, "error|Failed to delete user", decoded)
}

func TestFlash_ShownOnceOnNextPage(t *testing.T) {
	api := NewTestAPI(t)
	h := NewAuthHandler(api.Auth, siteURL)

	c, rec := NewTestContext(http.MethodGet, "/login", nil)
	c.Request().AddCookie(&http.Cookie{Name: flashCookieName, Value: url.QueryEscape("success|User deleted successfully")})

	require.NoError(t, h.HandleLoginForm(c))

	assert.Contains(t, rec.Body.String(), "User deleted successfully")
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopFlash_Malformed(t *testing.T) {
	for _, value := range []string{"", "no-separator", url.QueryEscape("success|"), "%zz"} {
		c, _ := NewTestContext(http.MethodGet, "/", nil)
		c.Request().AddCookie(&http.Cookie{Name: flashCookieName, Value: value})
		assert.Nil(t, popFlash(c), "value %q", value)
	}
}
