package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Author is the denormalised profile snippet carried on a post.
type Author struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Headline string `json:"headline,omitempty"`
}

// UnmarshalJSON accepts either a populated author object or a bare id string,
// the latter being what the backend sends when it does not populate the
// reference.
func (a *Author) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*a = Author{ID: id}
		return nil
	}

	type plain Author
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// DisplayName falls back to "Unknown" for unpopulated authors.
func (a Author) DisplayName() string {
	if a.Name == "" {
		return "Unknown"
	}
	return a.Name
}

// Post is a feed entry. Order of a post sequence is the backend's order,
// most recent first.
type Post struct {
	ID        string    `json:"_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CanEdit reports whether viewer authored p. Only authors get edit and
// delete actions.
func CanEdit(viewer *User, p Post) bool {
	return viewer != nil && viewer.ID != "" && viewer.ID == p.Author.ID
}
