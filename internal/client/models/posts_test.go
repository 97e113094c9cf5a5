package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePosts() []Post {
	return []Post{
		{ID: "p3", Content: "third", Author: Author{ID: "u1"}},
		{ID: "p2", Content: "second", Author: Author{ID: "u2"}},
		{ID: "p1", Content: "first", Author: Author{ID: "u1"}},
	}
}

func TestMergePost_ReplacesOnlyMatchingPost(t *testing.T) {
	posts := samplePosts()
	updated := Post{ID: "p2", Content: "second, edited", Author: Author{ID: "u2"}}

	got := MergePost(posts, updated)

	want := samplePosts()
	want[1] = updated
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MergePost mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "second", posts[1].Content, "input must not be mutated")
}

func TestMergePost_UnknownIDKeepsSequence(t *testing.T) {
	got := MergePost(samplePosts(), Post{ID: "nope", Content: "x"})
	if diff := cmp.Diff(samplePosts(), got); diff != "" {
		t.Fatalf("unexpected change (-want +got):\n%s", diff)
	}
}

func TestRemovePost_RemovesExactlyTarget(t *testing.T) {
	posts := samplePosts()

	got := RemovePost(posts, "p2")

	want := []Post{posts[0], posts[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RemovePost mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, posts, 3, "input must not be mutated")

	assert.Len(t, RemovePost(posts, "missing"), 3)
}

func TestPrependPost(t *testing.T) {
	posts := samplePosts()
	got := PrependPost(posts, Post{ID: "p4"})

	require.Len(t, got, 4)
	assert.Equal(t, "p4", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
	assert.Len(t, posts, 3)
}

func TestFindPost(t *testing.T) {
	p, ok := FindPost(samplePosts(), "p1")
	require.True(t, ok)
	assert.Equal(t, "first", p.Content)

	_, ok = FindPost(samplePosts(), "p9")
	assert.False(t, ok)
}

func TestCanEdit(t *testing.T) {
	p := Post{ID: "p1", Author: Author{ID: "u1"}}

	assert.True(t, CanEdit(&User{ID: "u1"}, p))
	assert.False(t, CanEdit(&User{ID: "u2"}, p))
	assert.False(t, CanEdit(nil, p))
	assert.False(t, CanEdit(&User{}, Post{}))
}

func TestPost_UnmarshalAuthorForms(t *testing.T) {
	raw := `[
		{"_id":"p1","content":"populated","createdAt":"2024-05-01T10:00:00Z","author":{"_id":"u1","name":"Jane"}},
		{"_id":"p2","content":"bare","createdAt":"2024-05-01T09:00:00Z","author":"u2"},
		{"_id":"p3","content":"missing","createdAt":"2024-05-01T08:00:00Z","author":null}
	]`

	var posts []Post
	require.NoError(t, json.Unmarshal([]byte(raw), &posts))
	require.Len(t, posts, 3)

	assert.Equal(t, Author{ID: "u1", Name: "Jane"}, posts[0].Author)
	assert.Equal(t, Author{ID: "u2"}, posts[1].Author)
	assert.Equal(t, "Unknown", posts[1].Author.DisplayName())
	assert.Equal(t, Author{}, posts[2].Author)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), posts[0].CreatedAt)
}

func TestUser_CloneAndInitial(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Clone())
	assert.Equal(t, "U", nilUser.Initial())

	u := &User{ID: "u1", Name: "jane"}
	c := u.Clone()
	c.Name = "changed"
	assert.Equal(t, "jane", u.Name)
	assert.Equal(t, "J", u.Initial())
	assert.Equal(t, "U", (&User{}).Initial())
}
