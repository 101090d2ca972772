package service

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/internal/auth"
	"github.com/loganlanou/reqres-dashboard/internal/handlers"
	"github.com/loganlanou/reqres-dashboard/internal/httpclient"
	"github.com/loganlanou/reqres-dashboard/internal/jobs"
	"github.com/loganlanou/reqres-dashboard/internal/middleware"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/internal/types"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/loganlanou/reqres-dashboard/storage"
)

const appName = "reqres-dashboard"

type Service struct {
	config      *Config
	sessions    *session.Manager
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler
	sweeper     *jobs.SessionSweeper
	startTime   time.Time
}

func New(kv storage.KV, config *Config) *Service {
	var opts []httpclient.Option
	opts = append(opts, httpclient.WithTimeout(config.API.Timeout))
	if config.API.Key != "" {
		opts = append(opts, httpclient.WithDefaultHeaders(httpclient.Headers{"x-api-key": config.API.Key}))
	}
	client := httpclient.New(config.API.BaseURL, opts...)

	authService := auth.NewService(client, config.API.ProfileUserID)
	sessions := session.NewManager(kv, authService, session.Options{
		Secret:       config.Session.Secret,
		MaxAge:       int(config.Session.MaxAge.Seconds()),
		Secure:       config.IsProduction(),
		FetchTimeout: config.API.Timeout,
	})

	// Stores without native expiry get a background sweeper
	var sweeper *jobs.SessionSweeper
	if purger, ok := kv.(jobs.Purger); ok {
		sweeper = jobs.NewSessionSweeper(purger, config.Session.MaxAge, jobs.DefaultSweepInterval)
		sweeper.Start(context.Background())
	}

	return &Service{
		config:      config,
		sessions:    sessions,
		authHandler: handlers.NewAuthHandler(authService, config.BaseURL),
		userHandler: handlers.NewUserHandler(users.NewService(client), config.BaseURL),
		sweeper:     sweeper,
		startTime:   time.Now(),
	}
}

// Close stops background jobs
func (s *Service) Close() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	loadSession := middleware.LoadSession(s.sessions)
	guest := []echo.MiddlewareFunc{loadSession, middleware.RedirectAuthenticated("/dashboard")}
	protected := []echo.MiddlewareFunc{loadSession, middleware.RequireToken("/login")}

	// Login - signed-in browsers are sent on to the dashboard
	e.GET("/login", s.authHandler.HandleLoginForm, guest...)
	e.POST("/login", s.authHandler.HandleLogin, guest...)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/dashboard")
	}, protected...)
	e.GET("/dashboard", s.userHandler.HandleDashboard, protected...)

	e.GET("/logout", s.authHandler.HandleLogoutConfirm, protected...)
	e.POST("/logout", s.authHandler.HandleLogout, protected...)

	// User routes
	e.GET("/users/:id", s.userHandler.HandleUserDetail, protected...)
	e.GET("/users/:id/edit", s.userHandler.HandleEditForm, protected...)
	e.POST("/users/:id/edit", s.userHandler.HandleUpdateUser, protected...)
	e.GET("/users/:id/delete", s.userHandler.HandleDeleteConfirm, protected...)
	e.POST("/users/:id/delete", s.userHandler.HandleDeleteUser, protected...)

	// Health check - no session
	e.GET("/health", s.handleHealth)

	// Anything else goes to the login page
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	})
}

func (s *Service) handleHealth(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, types.SystemInfo{
		Status:         "healthy",
		AppName:        appName,
		Environment:    s.config.Environment,
		StartTime:      s.startTime,
		Uptime:         time.Since(s.startTime).Round(time.Second).String(),
		GoVersion:      runtime.Version(),
		Architecture:   runtime.GOARCH,
		OS:             runtime.GOOS,
		PID:            os.Getpid(),
		Port:           s.config.Port,
		StoreDriver:    s.config.Store.Driver,
		APIBaseURL:     s.config.API.BaseURL,
		ActiveSessions: s.sessions.Active(),
		Memory: types.MemoryStats{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
			Goroutines: runtime.NumGoroutine(),
			AllocMB:    float64(mem.Alloc) / 1024 / 1024,
			SysMB:      float64(mem.Sys) / 1024 / 1024,
		},
	})
}
