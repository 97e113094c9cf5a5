package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/routes"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/services"
)

// getMultiline is an indirection used to facilitate testing.
var getMultiline = GetMultiline

// Feed shows the home screen.
func (a *App) Feed(ctx context.Context) error {
	a.Navigate(ctx, routes.HomePath)
	return nil
}

// Profile shows the profile of id, or of the signed-in user when id is empty.
func (a *App) Profile(ctx context.Context, id string) error {
	if id == "" {
		if !a.requireSession(ctx) {
			return nil
		}
		u := a.session.Snapshot().User
		if u == nil {
			a.println("Session is still being restored, try again in a moment")
			return nil
		}
		id = u.ID
	}
	a.Navigate(ctx, routes.ProfileURL(id))
	return nil
}

// Post prompts for content and publishes a new post.
func (a *App) Post(ctx context.Context) error {
	if !a.requireSession(ctx) {
		return nil
	}

	content, err := getMultiline(a.reader, "What do you want to talk about?", a.out)
	if err != nil {
		return err
	}

	p, err := a.feed.Create(ctx, content)
	if errors.Is(err, services.ErrEmptyContent) {
		a.println("Post content cannot be empty")
		return err
	}
	if err != nil {
		return err
	}
	a.printPost(p)
	return nil
}

// Edit prompts for new content of the post with id.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.requireSession(ctx) {
		return nil
	}
	if p, ok := a.findPost(id); ok {
		if !models.CanEdit(a.session.Snapshot().User, p) {
			a.println("You can only edit your own posts")
			return nil
		}
		a.println("Current content:")
		a.println(indent(p.Content))
	}

	content, err := getMultiline(a.reader, "Enter new content", a.out)
	if err != nil {
		return err
	}

	var p models.Post
	if a.onProfile() {
		p, err = a.profile.Edit(ctx, id, content)
	} else {
		p, err = a.feed.Edit(ctx, id, content)
	}
	if errors.Is(err, services.ErrEmptyContent) {
		a.println("Post content cannot be empty")
		return err
	}
	if err != nil {
		return err
	}
	a.printPost(p)
	return nil
}

// Delete removes the post with id after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.requireSession(ctx) {
		return nil
	}
	if p, ok := a.findPost(id); ok && !models.CanEdit(a.session.Snapshot().User, p) {
		a.println("You can only delete your own posts")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Are you sure you want to delete this post? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.println("Cancelled")
		return nil
	}

	if a.onProfile() {
		return a.profile.Delete(ctx, id)
	}
	return a.feed.Delete(ctx, id)
}

// Notifications lists the notifications that have not expired yet.
func (a *App) Notifications(_ context.Context) error {
	active := a.notes.Active()
	if len(active) == 0 {
		a.println("No notifications")
		return nil
	}
	for _, n := range active {
		a.printf("%s [%s] %s\n", n.ID, n.Severity, n.Message)
	}
	return nil
}

// Dismiss removes a notification before it expires.
func (a *App) Dismiss(_ context.Context, id string) error {
	if !a.notes.Dismiss(id) {
		a.println("Notification not found:", id)
	}
	return nil
}

func (a *App) showFeed(ctx context.Context) {
	posts, err := a.feed.Load(ctx)
	if err != nil {
		return
	}
	if len(posts) == 0 {
		a.println("No posts yet. Type 'post' to share something.")
		return
	}
	for _, p := range posts {
		a.printPost(p)
	}
}

func (a *App) showProfile(ctx context.Context, id string) {
	page, err := a.profile.Load(ctx, id)
	if err != nil {
		return
	}

	u := page.User
	a.printf("%s\n", u.Name)
	for _, line := range []string{u.Headline, u.Location, u.Bio} {
		if line != "" {
			a.println(line)
		}
	}
	a.println()

	if len(page.Posts) == 0 {
		a.println("No posts yet.")
		return
	}
	for _, p := range page.Posts {
		a.printPost(p)
	}
}

// findPost looks the post up on the screen on display.
func (a *App) findPost(id string) (models.Post, bool) {
	if a.onProfile() {
		if page := a.profile.Page(); page != nil {
			return models.FindPost(page.Posts, id)
		}
		return models.Post{}, false
	}
	return models.FindPost(a.feed.Posts(), id)
}

func (a *App) printPost(p models.Post) {
	var b strings.Builder
	b.WriteString("[" + p.ID + "] " + p.Author.DisplayName())
	if !p.CreatedAt.IsZero() {
		b.WriteString(" · " + p.CreatedAt.Local().Format(time.DateTime))
	}
	if !p.UpdatedAt.IsZero() && p.UpdatedAt.After(p.CreatedAt) {
		b.WriteString(" (edited)")
	}
	if models.CanEdit(a.session.Snapshot().User, p) {
		b.WriteString(" (yours)")
	}
	a.println(b.String())
	a.println(indent(p.Content))
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
