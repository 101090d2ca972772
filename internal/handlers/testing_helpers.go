package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/auth"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/reqresfake"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/storage"
)

// NewTestContext creates a new Echo context for testing. A non-nil form is
// sent url-encoded.
func NewTestContext(method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// TestAPI is a fake reqres API served over HTTP, with a client pointed at it.
type TestAPI struct {
	Fake   *reqresfake.Server
	Client *httpclient.Client
	Auth   *auth.Service
}

// NewTestAPI starts a fake reqres API for the duration of the test
func NewTestAPI(t testing.TB, opts ...reqresfake.Option) *TestAPI {
	t.Helper()

	fake := reqresfake.New(opts...)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := httpclient.New(srv.URL + "/api")
	return &TestAPI{
		Fake:   fake,
		Client: client,
		Auth:   auth.NewService(client, auth.DefaultProfileUserID),
	}
}

// NewTestSessionManager creates a session manager over an in-memory database
func NewTestSessionManager(t testing.TB, fetcher session.ProfileFetcher) *session.Manager {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	return session.NewManager(store, fetcher, session.Options{Secret: "test-secret", FetchTimeout: 5 * time.Second})
}

// SetTestSession attaches a session to c, signed in with token unless it is empty
func SetTestSession(t testing.TB, c echo.Context, mgr *session.Manager, token string) *session.Session {
	t.Helper()

	s := mgr.Resume(c.Request().Context(), uuid.NewString())
	if token != "" {
		if err := s.Login(context.Background(), token); err != nil {
			t.Fatalf("failed to log in test session: %v", err)
		}
	}
	session.WithSession(c, s)
	return s
}
