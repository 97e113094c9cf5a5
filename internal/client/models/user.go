// Package models defines the client-side shapes of backend resources
// (users, posts) and of the login and registration forms.
package models

import "strings"

// User is a profile as returned by the backend. It is cached only for the
// lifetime of a session and never persisted locally.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Headline string `json:"headline,omitempty"`
	Location string `json:"location,omitempty"`
}

// Clone returns a copy of u, or nil for a nil user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Initial is the upper-cased first letter of the name, used where no avatar
// is available.
func (u *User) Initial() string {
	if u == nil {
		return "U"
	}
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "U"
}

// ProfilePage is the payload of GET /users/:id.
type ProfilePage struct {
	User  User   `json:"user"`
	Posts []Post `json:"posts"`
}
