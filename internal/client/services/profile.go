package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// ProfileView backs the profile screen of one user and their posts.
type ProfileView interface {
	Load(ctx context.Context, userID string) (*models.ProfilePage, error)
	Edit(ctx context.Context, id, content string) (models.Post, error)
	Delete(ctx context.Context, id string) error
	// Page returns a copy of the loaded profile, or nil before Load.
	Page() *models.ProfilePage
	// Reset forgets the loaded profile.
	Reset()
}

type profileView struct {
	deps

	mu   sync.Mutex
	page *models.ProfilePage
}

// NewProfileView builds a ProfileView. session may be nil.
func NewProfileView(c client.PostClient, notes Notifier, session Expirer, log logging.Logger) ProfileView {
	return &profileView{deps: deps{client: c, notes: notes, session: session, log: log}}
}

func (v *profileView) Load(ctx context.Context, userID string) (*models.ProfilePage, error) {
	rctx, token := v.begin(ctx)
	page, err := v.client.GetProfile(rctx, userID)
	if err != nil {
		return nil, v.fail(ctx, token, err, MsgLoadProfileFailed)
	}

	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
	return v.Page(), nil
}

func (v *profileView) Edit(ctx context.Context, id, content string) (models.Post, error) {
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
	if v.page != nil {
		v.page.Posts = models.MergePost(v.page.Posts, p)
	}
	v.mu.Unlock()
	v.notes.Success(MsgPostUpdated)
	return p, nil
}

func (v *profileView) Delete(ctx context.Context, id string) error {
	rctx, token := v.begin(ctx)
	if err := v.client.DeletePost(rctx, id); err != nil {
		return v.fail(ctx, token, err, MsgDeleteFailed)
	}

	v.mu.Lock()
	if v.page != nil {
		v.page.Posts = models.RemovePost(v.page.Posts, id)
	}
	v.mu.Unlock()
	v.notes.Success(MsgPostDeleted)
	return nil
}

func (v *profileView) Page() *models.ProfilePage {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page == nil {
		return nil
	}
	return &models.ProfilePage{
		User:  v.page.User,
		Posts: append([]models.Post{}, v.page.Posts...),
	}
}

func (v *profileView) Reset() {
	v.mu.Lock()
	v.page = nil
	v.mu.Unlock()
}
