package routes

// Decision is the guard outcome for one navigation.
type Decision int

const (
	Render Decision = iota
	Redirect
)

func (d Decision) String() string {
	if d == Redirect {
		return "redirect"
	}
	return "render"
}

// Decide gates a navigation on the session state. Public routes always
// render. A protected route redirects to LoginPath only once the initial
// restore has finished (loading is false) and no token is present; while
// loading it renders, so a restore in flight never causes a redirect.
func Decide(loading, hasToken bool, r Route) Decision {
	if !r.Protected {
		return Render
	}
	if !loading && !hasToken {
		return Redirect
	}
	return Render
}
