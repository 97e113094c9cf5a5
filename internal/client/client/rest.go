package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// RESTClient talks to the backend over HTTP. It is safe for concurrent use.
type RESTClient struct {
	baseURL string
	http    *http.Client
	auth    *bearerTransport
}

var _ Client = (*RESTClient)(nil)

type options struct {
	timeout   time.Duration
	source    TokenSource
	transport http.RoundTripper
	log       logging.Logger
}

type Option func(*options)

// WithTimeout bounds every request, including reading the body. Zero means
// no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTokenSource sets where a token is read from when no default is set.
func WithTokenSource(src TokenSource) Option {
	return func(o *options) { o.source = src }
}

// WithTransport replaces http.DefaultTransport underneath the auth layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewRESTClient returns a client for the API rooted at baseURL, e.g.
// "https://host/api/v1".
func NewRESTClient(baseURL string, opts ...Option) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	o := options{transport: http.DefaultTransport, log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	auth := &bearerTransport{
		next:   &loggingTransport{next: o.transport, log: o.log},
		source: o.source,
		log:    o.log,
	}

	return &RESTClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Transport: auth, Timeout: o.timeout},
		auth:    auth,
	}, nil
}

func (c *RESTClient) SetToken(token string) {
	c.auth.setToken(token)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *RESTClient) Register(ctx context.Context, data models.RegisterData) (string, error) {
	return c.authenticate(ctx, "/auth/register", data)
}

func (c *RESTClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// authenticate posts to an endpoint that answers with {token}. These calls
// never carry a bearer token.
func (c *RESTClient) authenticate(ctx context.Context, path string, body any) (string, error) {
	var resp tokenResponse
	if err := c.do(WithAccessToken(ctx, ""), http.MethodPost, path, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: no token in %s response", ErrUnexpected, path)
	}
	return resp.Token, nil
}

func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	var resp envelope[models.User]
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *RESTClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var resp envelope[[]models.Post]
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []models.Post{}, nil
	}
	return resp.Data, nil
}

type postBody struct {
	Content string `json:"content"`
}

func (c *RESTClient) CreatePost(ctx context.Context, content string) (models.Post, error) {
	var resp envelope[models.Post]
	if err := c.do(ctx, http.MethodPost, "/posts", postBody{Content: content}, &resp); err != nil {
		return models.Post{}, err
	}
	return resp.Data, nil
}

func (c *RESTClient) UpdatePost(ctx context.Context, id, content string) (models.Post, error) {
	var resp envelope[models.Post]
	if err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), postBody{Content: content}, &resp); err != nil {
		return models.Post{}, err
	}
	return resp.Data, nil
}

func (c *RESTClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *RESTClient) GetProfile(ctx context.Context, userID string) (*models.ProfilePage, error) {
	var resp envelope[models.ProfilePage]
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Posts == nil {
		resp.Data.Posts = []models.Post{}
	}
	return &resp.Data, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty %s %s response", ErrUnexpected, method, path)
		}
		return fmt.Errorf("%w: decode %s %s response: %v", ErrUnexpected, method, path, err)
	}
	return nil
}
