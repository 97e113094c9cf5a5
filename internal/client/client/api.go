package client

import (
	"context"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
)

// AuthClient covers the /auth endpoints and the default bearer token.
type AuthClient interface {
	// SetToken sets the token attached to every later request. An empty
	// token detaches the header, and the TokenSource is not consulted again
	// until a non-empty token is set.
	SetToken(token string)
	Register(ctx context.Context, data models.RegisterData) (string, error)
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Me(ctx context.Context) (*models.User, error)
}

// PostClient covers posts and user profiles.
type PostClient interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, content string) (models.Post, error)
	UpdatePost(ctx context.Context, id, content string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	GetProfile(ctx context.Context, userID string) (*models.ProfilePage, error)
}

type Client interface {
	AuthClient
	PostClient
}
