package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

const tokenKey = "token"

var ErrEmptyToken = errors.New("session: empty token")

// Session is one browser's login state. Every transition bumps gen; a
// profile fetch only lands if the generation it was started for is still
// current, so the latest Login or Logout always wins.
type Session struct {
	id  string
	mgr *Manager

	mu      sync.Mutex
	token   string
	user    *Profile
	state   State
	gen     uint64
	settled chan struct{}
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func newSession(mgr *Manager, id string) *Session {
	return &Session{
		id:      id,
		mgr:     mgr,
		state:   Anonymous,
		settled: closedChan,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Token: s.token, State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Login stores token for this browser and starts loading its profile.
// Repeating the current token only re-persists it unless the last fetch
// failed, in which case the fetch is retried.
func (s *Session) Login(ctx context.Context, token string) error {
	if token == "" {
		slog.Warn("login rejected", "session_id", s.id, "error", ErrEmptyToken)
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unchanged := token == s.token && (s.state == Authenticating || s.state == Authenticated)
	s.token = token
	s.mgr.persist(ctx, s.id, token)
	s.mgr.track(s)

	if unchanged {
		return nil
	}

	gen, settled := s.beginLocked(Authenticating)
	go s.fetch(token, gen, settled)

	return nil
}

// Logout clears the token and profile and forgets the persisted token.
// Any fetch still in flight is discarded when it lands.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.token = ""
	s.user = nil
	s.state = Anonymous
	s.settled = closedChan

	s.mgr.unpersist(ctx, s.id)
	s.mgr.forget(s)
}

// Await blocks until the profile fetch for the current generation has
// settled, then returns the resulting snapshot.
func (s *Session) Await(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		gen, settled := s.gen, s.settled
		s.mu.Unlock()

		select {
		case <-settled:
		case <-ctx.Done():
			return s.Snapshot(), ctx.Err()
		}

		s.mu.Lock()
		if s.gen == gen {
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		s.mu.Unlock()
	}
}

// beginLocked starts a new generation that awaits a fetch.
func (s *Session) beginLocked(state State) (uint64, chan struct{}) {
	s.gen++
	s.user = nil
	s.state = state
	s.settled = make(chan struct{})
	return s.gen, s.settled
}

func (s *Session) fetch(token string, gen uint64, settled chan struct{}) {
	defer close(settled)

	profile, err := s.mgr.fetchProfile(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		slog.Debug("discarding stale profile fetch", "session_id", s.id, "generation", gen, "current", s.gen)
		return
	}

	if err != nil {
		slog.Error("failed to fetch user profile", "session_id", s.id, "error", err)
		s.state = AuthError
		s.user = nil
		return
	}

	s.user = profile
	s.state = Authenticated
}

// resume seeds a freshly hydrated session with a stored token.
func (s *Session) resume(token string) (uint64, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return s.beginLocked(Authenticating)
}
