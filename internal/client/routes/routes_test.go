package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		view   View
		params map[string]string
	}{
		{"/", ViewHome, map[string]string{}},
		{"", ViewHome, map[string]string{}},
		{"/login", ViewLogin, map[string]string{}},
		{"/login/", ViewLogin, map[string]string{}},
		{"register", ViewRegister, map[string]string{}},
		{"/profile/abc123", ViewProfile, map[string]string{"id": "abc123"}},
		{"/profile/a%20b?tab=posts", ViewProfile, map[string]string{"id": "a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.view, m.View)
			assert.Equal(t, tt.params, m.Params)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	for _, p := range []string{"/profile", "/profile/", "/profile/a/b", "/settings"} {
		_, err := Resolve(p)
		assert.ErrorIs(t, err, ErrRouteNotFound, p)
	}
}

func TestProfileURL_RoundTrips(t *testing.T) {
	m, err := Resolve(ProfileURL("id with/slash"))
	require.NoError(t, err)
	assert.Equal(t, ViewProfile, m.View)
	assert.Equal(t, "id with/slash", m.Params["id"])
}
