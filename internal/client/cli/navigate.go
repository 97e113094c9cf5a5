package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/routes"
)

// Navigate shows the screen for path. Protected screens are guarded: while
// the session is restoring they render, and without a token they redirect
// to the login screen.
func (a *App) Navigate(ctx context.Context, path string) {
	m, err := routes.Resolve(path)
	if errors.Is(err, routes.ErrRouteNotFound) {
		a.println("Page not found:", path)
		return
	}

	st := a.session.Snapshot()
	if routes.Decide(st.Loading, st.HasToken(), m.Route) == routes.Redirect {
		a.log.Debug(ctx, "guard redirect", "from", m.Path)
		a.Navigate(ctx, routes.LoginPath)
		return
	}

	a.setCurrent(m.Path)
	a.render(ctx, m)
}

func (a *App) render(ctx context.Context, m routes.Match) {
	switch m.Route.View {
	case routes.ViewLogin:
		a.println("You are not logged in. Type 'login' to sign in or 'register' to create an account.")
	case routes.ViewRegister:
		a.println("Type 'register' to create an account.")
	case routes.ViewHome:
		a.showFeed(ctx)
	case routes.ViewProfile:
		a.showProfile(ctx, m.Params["id"])
	}
}

// Open navigates to a path typed by the user.
func (a *App) Open(ctx context.Context, path string) error {
	a.Navigate(ctx, path)
	return nil
}

func (a *App) setCurrent(path string) {
	a.mu.Lock()
	a.current = path
	a.mu.Unlock()
}

func (a *App) currentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// onProfile reports whether the profile screen is on display.
func (a *App) onProfile() bool {
	m, err := routes.Resolve(a.currentPath())
	return err == nil && m.Route.View == routes.ViewProfile
}

// requireSession applies the guard to commands that act on protected
// screens. It reports whether the command may proceed.
func (a *App) requireSession(ctx context.Context) bool {
	st := a.session.Snapshot()
	home, _ := routes.Resolve(routes.HomePath)
	if routes.Decide(st.Loading, st.HasToken(), home.Route) == routes.Redirect {
		a.Navigate(ctx, routes.LoginPath)
		return false
	}
	return true
}
