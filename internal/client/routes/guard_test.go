package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Matrix(t *testing.T) {
	home := Route{Pattern: HomePath, View: ViewHome, Protected: true}
	login := Route{Pattern: LoginPath, View: ViewLogin}

	tests := []struct {
		name     string
		loading  bool
		hasToken bool
		route    Route
		want     Decision
	}{
		{"loading, no token", true, false, home, Render},
		{"loading, token", true, true, home, Render},
		{"loaded, no token", false, false, home, Redirect},
		{"loaded, token", false, true, home, Render},
		{"public, loaded, no token", false, false, login, Render},
		{"public, loading", true, false, login, Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.loading, tt.hasToken, tt.route))
		})
	}
}

func TestDecide_EveryProtectedRoute(t *testing.T) {
	for _, r := range Table {
		if !r.Protected {
			continue
		}
		assert.Equal(t, Redirect, Decide(false, false, r), r.Pattern)
		assert.Equal(t, Render, Decide(true, false, r), r.Pattern)
		assert.Equal(t, Render, Decide(false, true, r), r.Pattern)
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "redirect", Redirect.String())
}
