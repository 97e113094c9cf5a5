package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/routes"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// State is a snapshot of the session.
type State struct {
	Token   string
	User    *models.User
	Loading bool
}

func (s State) HasToken() bool { return s.Token != "" }

// Authenticated reports whether the token has been confirmed by the backend.
func (s State) Authenticated() bool { return s.Token != "" && s.User != nil }

func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}

// Navigator moves the client to another screen.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

type Store struct {
	api    client.AuthClient
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	// commit serialises token transitions: establishing a session and
	// invalidating one. Network calls happen outside it.
	commit sync.Mutex

	mu      sync.Mutex
	state   State
	nav     Navigator
	subs    map[int]func(State)
	nextSub int
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithNavigator(nav Navigator) Option {
	return func(s *Store) { s.nav = nav }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a Store seeded from the persisted token. Loading starts true
// exactly when a token was found; call Restore to settle it.
func New(ctx context.Context, api client.AuthClient, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		log:    logging.Discard(),
		now:    time.Now,
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token failed", "error", err)
		token = ""
	}
	s.state = State{Token: token, Loading: token != ""}
	return s
}

// SetNavigator replaces the navigator. It exists for callers that must
// build the Store before the component that renders screens.
func (s *Store) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Token returns the current token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Subscribe registers fn to receive the new state after every change. The
// returned func removes it. fn must not call Login, Register, Logout or
// Expire.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Restore validates the persisted token against the backend. It never
// fails: any problem ends in the logged-out state with a redirect to the
// login screen.
func (s *Store) Restore(ctx context.Context) {
	token := s.Snapshot().Token
	if token == "" {
		s.update(func(st *State) { st.Loading = false })
		return
	}

	if exp, ok := TokenExpiry(token); ok && !exp.After(s.now()) {
		s.log.Info(ctx, "persisted token expired", "expired_at", exp)
		if s.expireIfCurrent(ctx, token) {
			s.navigate(ctx, routes.LoginPath)
		}
		return
	}

	s.api.SetToken(token)
	user, err := s.api.Me(client.WithAccessToken(ctx, token))
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "error", err)
		if s.expireIfCurrent(ctx, token) {
			s.navigate(ctx, routes.LoginPath)
		}
		return
	}

	s.update(func(st *State) {
		if st.Token == token {
			st.User = user
		}
		st.Loading = false
	})
	s.log.Info(ctx, "session restored", "user", user.ID)
}

// Login exchanges credentials for a token and establishes the session.
// On failure the state is left as it was.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.establish(ctx, token)
}

// Register creates an account and establishes the session for it.
func (s *Store) Register(ctx context.Context, data models.RegisterData) error {
	token, err := s.api.Register(ctx, data)
	if err != nil {
		return err
	}
	return s.establish(ctx, token)
}

// establish loads the user for a freshly issued token and only then commits
// the token to storage, the adapter and the state.
func (s *Store) establish(ctx context.Context, token string) error {
	user, err := s.api.Me(client.WithAccessToken(ctx, token))
	if err != nil {
		return fmt.Errorf("load current user: %w", err)
	}
	s.commit.Lock()
	if err := s.tokens.Save(ctx, token); err != nil {
		s.commit.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s.api.SetToken(token)
	s.update(func(st *State) {
		*st = State{Token: token, User: user}
	})
	s.commit.Unlock()

	s.log.Info(ctx, "logged in", "user", user.ID)
	s.navigate(ctx, routes.HomePath)
	return nil
}

// Logout ends the session. It does not fail; storage errors are logged.
func (s *Store) Logout(ctx context.Context) {
	s.invalidate(ctx)
	s.log.Info(ctx, "logged out")
	s.navigate(ctx, routes.LoginPath)
}

// Expire ends a session the backend no longer accepts. It is a no-op when
// there is no session.
// Expire ends the session after the backend rejected token. It does nothing
// when token is no longer the current one, so a late 401 from a request made
// before a re-login cannot end the newer session.
func (s *Store) Expire(ctx context.Context, token string) {
	if !s.expireIfCurrent(ctx, token) {
		return
	}
	s.log.Info(ctx, "session expired")
	s.navigate(ctx, routes.LoginPath)
}

// Revalidate re-checks the current token against the backend. A 401 ends
// the session; other errors are returned and leave the state untouched.
func (s *Store) Revalidate(ctx context.Context) error {
	st := s.Snapshot()
	if !st.HasToken() || st.Loading {
		return nil
	}

	user, err := s.api.Me(client.WithAccessToken(ctx, st.Token))
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		s.Expire(ctx, st.Token)
		return nil
	case err != nil:
		return err
	}

	s.update(func(cur *State) {
		if cur.Token == st.Token {
			cur.User = user
		}
	})
	return nil
}

// expireIfCurrent invalidates the session only while token is still the
// current one and reports whether it did.
func (s *Store) expireIfCurrent(ctx context.Context, token string) bool {
	s.commit.Lock()
	defer s.commit.Unlock()

	s.mu.Lock()
	current := token != "" && s.state.Token == token
	s.mu.Unlock()
	if !current {
		s.log.Debug(ctx, "ignoring rejection of a stale token")
		return false
	}
	s.invalidateLocked(ctx)
	return true
}

func (s *Store) invalidate(ctx context.Context) {
	s.commit.Lock()
	defer s.commit.Unlock()
	s.invalidateLocked(ctx)
}

// invalidateLocked requires s.commit.
func (s *Store) invalidateLocked(ctx context.Context) {
	s.api.SetToken("")
	if err := s.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		s.log.Error(ctx, "clearing persisted token failed", "error", err)
	}
	s.update(func(st *State) { *st = State{} })
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Store) navigate(ctx context.Context, path string) {
	s.mu.Lock()
	nav := s.nav
	s.mu.Unlock()
	if nav != nil {
		nav.Navigate(ctx, path)
	}
}
