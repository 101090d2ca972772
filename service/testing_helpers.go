package service

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/reqresfake"
	"github.com/loganlanou/reqres-dashboard/storage"
)

// testConfig returns a config pointed at apiURL with short timeouts
func testConfig(apiURL string) *Config {
	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
	}
	config.API.BaseURL = apiURL
	config.API.Timeout = 5 * time.Second
	config.API.ProfileUserID = 2
	config.Session.Secret = "test-secret"
	config.Session.MaxAge = time.Hour
	config.Store.Driver = "sqlite"
	return config
}

// startFakeAPI serves a fake reqres API for the duration of the test
func startFakeAPI(t *testing.T, opts ...reqresfake.Option) (*reqresfake.Server, string) {
	t.Helper()

	fake := reqresfake.New(opts...)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return fake, srv.URL + "/api"
}

// setupTestService creates a service backed by an in-memory database and a fake API
func setupTestService(t *testing.T, opts ...reqresfake.Option) (*Service, *storage.Storage, *reqresfake.Server) {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	fake, apiURL := startFakeAPI(t, opts...)
	svc := New(store, testConfig(apiURL))
	t.Cleanup(svc.Close)
	return svc, store, fake
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T, opts ...reqresfake.Option) (*echo.Echo, *reqresfake.Server) {
	t.Helper()

	svc, _, fake := setupTestService(t, opts...)
	return newTestEcho(svc), fake
}

func newTestEcho(svc *Service) *echo.Echo {
	e := echo.New()
	// Just set the status code for cleaner test output
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			c.Response().WriteHeader(he.Code)
		} else {
			c.Response().WriteHeader(http.StatusInternalServerError)
		}
	}
	svc.RegisterRoutes(e)
	return e
}

// browser replays cookies between requests like a real client would
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range b.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rec
}
