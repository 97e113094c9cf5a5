package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/notify"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// Messages shown after view actions.
const (
	MsgPostCreated = "Post created successfully"
	MsgPostUpdated = "Post updated successfully"
	MsgPostDeleted = "Post deleted successfully"

	MsgLoadPostsFailed   = "Failed to load posts"
	MsgLoadProfileFailed = "Failed to load profile"
	MsgCreateFailed      = "Failed to create post"
	MsgUpdateFailed      = "Failed to update post"
	MsgDeleteFailed      = "Failed to delete post"
)

// ErrEmptyContent is returned without a request when post content is blank.
var ErrEmptyContent = errors.New("post content is required")

// Notifier receives the outcome of each action.
type Notifier interface {
	Success(message string) notify.Notification
	Error(message string) notify.Notification
}

// Expirer exposes the session token and ends a session the backend has
// stopped accepting. Expire must ignore a token that is no longer current.
type Expirer interface {
	Token() string
	Expire(ctx context.Context, token string)
}

// deps is shared by every view.
type deps struct {
	client  client.PostClient
	notes   Notifier
	session Expirer
	log     logging.Logger
}

// begin pins the current session token to ctx so a rejection can be
// attributed to the token the request actually carried.
func (d deps) begin(ctx context.Context) (context.Context, string) {
	if d.session == nil {
		return ctx, ""
	}
	token := d.session.Token()
	if token == "" {
		return ctx, ""
	}
	return client.WithAccessToken(ctx, token), token
}

func (d deps) fail(ctx context.Context, token string, err error, message string) error {
	d.log.Warn(ctx, message, "error", err)
	d.notes.Error(message)
	if errors.Is(err, client.ErrUnauthorized) && token != "" {
		d.session.Expire(ctx, token)
	}
	return err
}

func checkContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}
