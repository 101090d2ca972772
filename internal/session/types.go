package session

import "context"

// State is where a browser session sits in the login lifecycle.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	AuthError
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthError:
		return "auth_error"
	default:
		return "unknown"
	}
}

// Profile is the signed-in user's display data. It is never mutated in
// place; a refetch replaces it.
type Profile struct {
	ID     int
	Avatar string
	Name   string
	Email  string
}

// Snapshot is a consistent copy of a session's observable state.
// User is only ever set alongside a non-empty Token.
type Snapshot struct {
	Token string
	User  *Profile
	State State
}

func (s Snapshot) HasToken() bool {
	return s.Token != ""
}

// ProfileFetcher loads the profile that belongs to token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*Profile, error)
}

// ProfileFetcherFunc adapts a function to ProfileFetcher.
type ProfileFetcherFunc func(ctx context.Context, token string) (*Profile, error)

func (f ProfileFetcherFunc) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	return f(ctx, token)
}
