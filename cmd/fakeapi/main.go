package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/lmittmann/tint"
	"github.com/loganlanou/reqres-dashboard/internal/reqresfake"
)

// Runs the in-memory reqres API for local development. Point the dashboard
// at it with API_BASE_URL=http://localhost:9000/api.
type config struct {
	Addr      string        `env:"FAKEAPI_ADDR" envDefault:":9000"`
	UserCount int           `env:"FAKEAPI_USERS" envDefault:"12"`
	PerPage   int           `env:"FAKEAPI_PER_PAGE" envDefault:"6"`
	Seed      uint64        `env:"FAKEAPI_SEED" envDefault:"42"`
	Latency   time.Duration `env:"FAKEAPI_LATENCY" envDefault:"0s"`
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{TimeFormat: time.TimeOnly})))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	srv := reqresfake.New(
		reqresfake.WithUserCount(cfg.UserCount),
		reqresfake.WithPerPage(cfg.PerPage),
		reqresfake.WithSeed(cfg.Seed),
		reqresfake.WithLatency(cfg.Latency),
	)

	slog.Info("fake reqres API starting",
		"addr", cfg.Addr,
		"users", cfg.UserCount,
		"login_email", reqresfake.EveEmail,
		"token", reqresfake.Token,
	)
	if err := srv.Start(cfg.Addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
