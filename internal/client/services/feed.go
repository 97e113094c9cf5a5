package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// FeedView backs the home screen: every post, most recent first.
type FeedView interface {
	Load(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, content string) (models.Post, error)
	Edit(ctx context.Context, id, content string) (models.Post, error)
	Delete(ctx context.Context, id string) error
	// Posts returns a copy of the current list.
	Posts() []models.Post
	// Reset drops the cached list.
	Reset()
}

type feedView struct {
	deps

	mu    sync.Mutex
	posts []models.Post
}

// NewFeedView builds a FeedView. session may be nil.
func NewFeedView(c client.PostClient, notes Notifier, session Expirer, log logging.Logger) FeedView {
	return &feedView{deps: deps{client: c, notes: notes, session: session, log: log}}
}

func (v *feedView) Load(ctx context.Context) ([]models.Post, error) {
	rctx, token := v.begin(ctx)
	posts, err := v.client.ListPosts(rctx)
	if err != nil {
		return nil, v.fail(ctx, token, err, MsgLoadPostsFailed)
	}
	v.set(posts)
	return v.Posts(), nil
}

func (v *feedView) Create(ctx context.Context, content string) (models.Post, error) {
	content, err := checkContent(content)
	if err != nil {
		return models.Post{}, err
	}

	rctx, token := v.begin(ctx)
	p, err := v.client.CreatePost(rctx, content)
	if err != nil {
		return models.Post{}, v.fail(ctx, token, err, MsgCreateFailed)
	}

	v.mu.Lock()
	v.posts = models.PrependPost(v.posts, p)
	v.mu.Unlock()
	v.notes.Success(MsgPostCreated)
	return p, nil
}

func (v *feedView) Edit(ctx context.Context, id, content string) (models.Post, error) {
	content, err := checkContent(content)
	if err != nil {
		return models.Post{}, err
	}

	rctx, token := v.begin(ctx)
	p, err := v.client.UpdatePost(rctx, id, content)
	if err != nil {
		return models.Post{}, v.fail(ctx, token, err, MsgUpdateFailed)
	}

	v.mu.Lock()
	v.posts = models.MergePost(v.posts, p)
	v.mu.Unlock()
	v.notes.Success(MsgPostUpdated)
	return p, nil
}

func (v *feedView) Delete(ctx context.Context, id string) error {
	rctx, token := v.begin(ctx)
	if err := v.client.DeletePost(rctx, id); err != nil {
		return v.fail(ctx, token, err, MsgDeleteFailed)
	}

	v.mu.Lock()
	v.posts = models.RemovePost(v.posts, id)
	v.mu.Unlock()
	v.notes.Success(MsgPostDeleted)
	return nil
}

func (v *feedView) Posts() []models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Post{}, v.posts...)
}

func (v *feedView) set(posts []models.Post) {
	v.mu.Lock()
	v.posts = append([]models.Post{}, posts...)
	v.mu.Unlock()
}

func (v *feedView) Reset() {
	v.mu.Lock()
	v.posts = nil
	v.mu.Unlock()
}
