package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/config"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/notify"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/routes"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/services"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/session"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	tokens  *session.SQLiteTokenStore
	session *session.Store
	notes   *notify.Center
	feed    services.FeedView
	profile services.ProfileView

	reader *bufio.Reader
	out    io.Writer

	unsubscribe func()

	mu      sync.Mutex
	current string        // path of the screen on display
	seen    session.State // last state reported to onSessionChange
}

var _ session.Navigator = (*App)(nil)

// NewApp opens the local database, builds the REST client and reads the
// persisted session. Nothing is sent to the backend until Run.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	tokens := session.NewSQLiteTokenStore(db)

	api, err := client.NewRESTClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(tokens.Load),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: c,
		log:    log,
		db:     db,
		tokens: tokens,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.notes = notify.NewCenter(notify.WithTTL(c.NotificationTTL), notify.WithSink(a.showNotification))
	a.session = session.New(ctx, api, tokens, session.WithLogger(log), session.WithNavigator(a))
	a.feed = services.NewFeedView(api, a.notes, a.session, log)
	a.profile = services.NewProfileView(api, a.notes, a.session, log)
	a.seen = a.session.Snapshot()
	a.unsubscribe = a.session.Subscribe(a.onSessionChange)

	return a, nil
}

// Run restores the session, starts the session watcher and serves the REPL
// until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to LinkedIn clone (type 'help' for commands)")

	a.session.Restore(ctx)
	if a.currentPath() == "" {
		a.Navigate(ctx, routes.HomePath)
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	if a.config.SessionCheckInterval > 0 {
		go a.StartSessionWatcher(watchCtx, a.config.SessionCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	a.unsubscribe()
	a.notes.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()
	switch {
	case st.Loading:
		return "(restoring)"
	case st.User != nil:
		return fmt.Sprintf("(%s)", st.User.Name)
	default:
		return ""
	}
}

// StartSessionWatcher revalidates the session every interval. A rejected
// token logs the user out; an unreachable backend does not.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithCancel(ctx)
			if a.config.RequestTimeout > 0 {
				checkCtx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
			}
			err := a.session.Revalidate(checkCtx)
			cancel()
			if err != nil {
				a.log.Debug(ctx, "session check failed", "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// onSessionChange drops data cached for the previous token and announces
// sign-in and sign-out.
func (a *App) onSessionChange(st session.State) {
	a.mu.Lock()
	prev := a.seen
	a.seen = st
	a.mu.Unlock()

	if st.Token != prev.Token {
		a.feed.Reset()
		a.profile.Reset()
	}

	switch {
	case st.User != nil && (prev.User == nil || st.Token != prev.Token):
		a.printf("Signed in as %s\n", st.User.Name)
	case st.Token == "" && prev.Token != "":
		a.println("Signed out")
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) showNotification(n notify.Notification) {
	a.printf("[%s] %s\n", n.Severity, n.Message)
}
