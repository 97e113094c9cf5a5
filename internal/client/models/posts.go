package models

// The helpers below keep a locally held post sequence in step with a
// successful create, edit or delete without refetching it. None of them
// mutates its input.

// PrependPost returns a new sequence with p first, as a freshly created
// post is the most recent one.
func PrependPost(posts []Post, p Post) []Post {
	out := make([]Post, 0, len(posts)+1)
	out = append(out, p)
	return append(out, posts...)
}

// MergePost returns a copy of posts in which the element whose ID matches
// updated is replaced by it. Positions and all other elements are kept.
// An unknown ID yields an unchanged copy.
func MergePost(posts []Post, updated Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		if p.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = p
	}
	return out
}

// RemovePost returns a copy of posts without the element with the given id.
func RemovePost(posts []Post, id string) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// FindPost returns the post with the given id.
func FindPost(posts []Post, id string) (Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}
