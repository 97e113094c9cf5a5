package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/apitest"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type env struct {
	srv    *apitest.Server
	api    *client.RESTClient
	db     *sql.DB
	tokens *SQLiteTokenStore
	nav    *recordingNavigator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens := NewSQLiteTokenStore(db)
	api, err := client.NewRESTClient(srv.BaseURL(), client.WithTokenSource(tokens.Load))
	require.NoError(t, err)

	return &env{srv: srv, api: api, db: db, tokens: tokens, nav: &recordingNavigator{}}
}

func (e *env) newStore(t *testing.T) *Store {
	t.Helper()
	return New(context.Background(), e.api, e.tokens, WithNavigator(e.nav))
}

func (e *env) persisted(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Load(context.Background())
	require.NoError(t, err)
	return token
}

// fakeAuth is an AuthClient with scripted results.
type fakeAuth struct {
	mu       sync.Mutex
	token    string
	meUser   *models.User
	meErr    error
	meCalls  int
	loginTok string
	loginErr error
	// me, when set, answers Me in place of meUser and meErr. call counts
	// from 1.
	me func(ctx context.Context, call int) (*models.User, error)
}

func (f *fakeAuth) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAuth) Register(context.Context, models.RegisterData) (string, error) {
	return f.loginTok, f.loginErr
}

func (f *fakeAuth) Login(context.Context, models.Credentials) (string, error) {
	return f.loginTok, f.loginErr
}

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.meCalls++
	call, me := f.meCalls, f.me
	user, err := f.meUser.Clone(), f.meErr
	f.mu.Unlock()

	if me != nil {
		return me(ctx, call)
	}
	return user, err
}

func (f *fakeAuth) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type brokenTokenStore struct {
	MemoryTokenStore
}

func (b *brokenTokenStore) Save(context.Context, string) error { return errors.New("disk full") }
func (b *brokenTokenStore) Clear(context.Context) error        { return errors.New("disk gone") }
