// Package routes is the client's route table and the guard deciding whether
// a protected screen may be shown for the current session state.
package routes

import (
	"errors"
	"net/url"
	"strings"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	HomePath     = "/"
	ProfilePath  = "/profile/:id"
)

var ErrRouteNotFound = errors.New("route not found")

// View names a screen.
type View string

const (
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewHome     View = "home"
	ViewProfile  View = "profile"
)

// Route is an entry of the route table.
type Route struct {
	Pattern   string
	View      View
	Protected bool
}

// Table is the application's routes, in match order.
var Table = []Route{
	{Pattern: LoginPath, View: ViewLogin},
	{Pattern: RegisterPath, View: ViewRegister},
	{Pattern: HomePath, View: ViewHome, Protected: true},
	{Pattern: ProfilePath, View: ViewProfile, Protected: true},
}

// Match is a resolved path.
type Match struct {
	Route
	Path   string
	Params map[string]string
}

// Resolve matches path against Table. Matching is exact per segment; a
// ":name" segment captures one non-empty segment. A trailing slash and a
// query string are ignored.
func Resolve(path string) (Match, error) {
	clean := normalize(path)
	for _, r := range Table {
		if params, ok := matchPattern(r.Pattern, clean); ok {
			return Match{Route: r, Path: clean, Params: params}, nil
		}
	}
	return Match{}, ErrRouteNotFound
}

// ProfileURL builds the path of a user's profile.
func ProfileURL(userID string) string {
	return "/profile/" + url.PathEscape(userID)
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	ps, xs := segments(pattern), segments(path)
	if len(ps) != len(xs) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range ps {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(xs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[name] = v
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return params, true
}
