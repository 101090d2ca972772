// Package reqresfake serves an in-memory stand-in for the reqres.in API.
//
// Users are generated deterministically from a seed; Eve Holt
// (eve.holt@reqres.in) is always present so the documented reqres login
// works. Updates and deletes persist for the lifetime of the Server.
package reqresfake

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/loganlanou/reqres-dashboard/internal/users"
)

const (
	// Token is returned by every successful login, as reqres does.
	Token = "QpwL5tke4Pnpja7X4"

	EveEmail = "eve.holt@reqres.in"

	defaultUserCount = 12
	defaultPerPage   = 6
	defaultSeed      = 42
	eveID            = 4
)

type Server struct {
	e *echo.Echo

	mu      sync.RWMutex
	users   []users.Record
	perPage int
	latency time.Duration
}

type Option func(*config)

type config struct {
	userCount int
	perPage   int
	seed      uint64
	latency   time.Duration
}

func WithUserCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.userCount = n
		}
	}
}

func WithPerPage(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.perPage = n
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithLatency delays every response, for exercising slow-network paths.
func WithLatency(d time.Duration) Option {
	return func(c *config) {
		c.latency = d
	}
}

func New(opts ...Option) *Server {
	cfg := config{
		userCount: defaultUserCount,
		perPage:   defaultPerPage,
		seed:      defaultSeed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		users:   generateUsers(cfg.userCount, cfg.seed),
		perPage: cfg.perPage,
		latency: cfg.latency,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.delay)

	api := e.Group("/api")
	api.POST("/login", s.handleLogin)
	api.GET("/users", s.handleList)
	api.GET("/users/:id", s.handleGet)
	api.PUT("/users/:id", s.handleUpdate)
	api.PATCH("/users/:id", s.handleUpdate)
	api.DELETE("/users/:id", s.handleDelete)

	s.e = e
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Users returns a copy of the current user list.
func (s *Server) Users() []users.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]users.Record, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Server) User(id int) (users.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.users[i], true
	}
	return users.Record{}, false
}

// Remove deletes a user directly, bypassing the API.
func (s *Server) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.users = append(s.users[:i], s.users[i+1:]...)
	}
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) delay(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}
		return next(c)
	}
}

func generateUsers(count int, seed uint64) []users.Record {
	faker := gofakeit.New(seed)

	eve := min(eveID, count)
	out := make([]users.Record, 0, count)
	for id := 1; id <= count; id++ {
		first, last := faker.FirstName(), faker.LastName()
		if id == eve {
			first, last = "Eve", "Holt"
		}

		email := strings.ToLower(first + "." + last + "@reqres.in")
		if id == eve {
			email = EveEmail
		}

		out = append(out, users.Record{
			ID:        id,
			FirstName: first,
			LastName:  last,
			Email:     email,
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		})
	}
	return out
}

func parseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil
}
