package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/storage"
	"golang.org/x/sync/singleflight"
)

const (
	cookieName = "dashboard_session"
	idKey      = "sid"

	defaultMaxAge       = 86400 * 7 // 7 days
	defaultFetchTimeout = 30 * time.Second
)

var errEmptyProfile = errors.New("session: profile fetch returned no profile")

type Options struct {
	Secret       string
	MaxAge       int
	Secure       bool
	FetchTimeout time.Duration
}

// Manager hands out the Session for each browser. The cookie only carries
// an opaque id; the token lives in the KV store under that id so it
// survives restarts.
type Manager struct {
	store        sessions.Store
	kv           storage.KV
	fetcher      ProfileFetcher
	fetchTimeout time.Duration
	group        singleflight.Group

	mu   sync.Mutex
	live map[string]*Session
}

func NewManager(kv storage.KV, fetcher ProfileFetcher, opts Options) *Manager {
	store := sessions.NewCookieStore([]byte(opts.Secret))

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &Manager{
		store:        store,
		kv:           kv,
		fetcher:      fetcher,
		fetchTimeout: fetchTimeout,
		live:         make(map[string]*Session),
	}
}

// Load returns the Session for the browser making the request, issuing a
// new session cookie when the request carries none (or an invalid one).
func (m *Manager) Load(c echo.Context) (*Session, error) {
	req := c.Request()

	cookie, err := m.store.Get(req, cookieName)
	if err != nil {
		slog.Debug("discarding unreadable session cookie", "error", err)
	}

	id, _ := cookie.Values[idKey].(string)
	if id == "" {
		id = uuid.NewString()
		cookie.Values[idKey] = id
		if err := cookie.Save(req, c.Response()); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	return m.Resume(req.Context(), id), nil
}

// Resume returns the live Session for id, rebuilding it from the KV store
// when this process has not seen it yet. A stored token puts the session
// straight into Authenticating and starts a profile fetch.
func (m *Manager) Resume(ctx context.Context, id string) *Session {
	if s, ok := m.lookup(id); ok {
		return s
	}

	s := newSession(m, id)

	var token string
	found, err := m.kv.Get(ctx, id, tokenKey, &token)
	if err != nil {
		slog.Error("failed to read stored token", "session_id", id, "error", err)
	}
	if !found || token == "" {
		return s
	}

	m.mu.Lock()
	if existing, ok := m.live[id]; ok {
		m.mu.Unlock()
		return existing
	}
	m.live[id] = s
	m.mu.Unlock()

	gen, settled := s.resume(token)
	go s.fetch(token, gen, settled)

	return s
}

// Active is the number of sessions currently holding a token in memory.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

func (m *Manager) lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.live[id]
	return s, ok
}

func (m *Manager) track(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[s.id] = s
}

func (m *Manager) forget(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live[s.id] == s {
		delete(m.live, s.id)
	}
}

// fetchProfile runs at most one request per token at a time, shared by
// every session that asks for it meanwhile.
func (m *Manager) fetchProfile(token string) (*Profile, error) {
	v, err, shared := m.group.Do(token, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), m.fetchTimeout)
		defer cancel()
		return m.fetcher.FetchProfile(ctx, token)
	})
	if shared {
		slog.Debug("profile fetch shared between sessions")
	}
	if err != nil {
		return nil, err
	}
	profile, _ := v.(*Profile)
	if profile == nil {
		return nil, errEmptyProfile
	}
	return profile, nil
}

// Storage failures never block a transition; the in-memory state is
// authoritative for the life of the process.
func (m *Manager) persist(ctx context.Context, id, token string) {
	if err := m.kv.Set(ctx, id, tokenKey, token); err != nil {
		slog.Error("failed to persist token", "session_id", id, "error", err)
	}
}

func (m *Manager) unpersist(ctx context.Context, id string) {
	if err := m.kv.Remove(ctx, id, tokenKey); err != nil {
		slog.Error("failed to remove stored token", "session_id", id, "error", err)
	}
}
