package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/common"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// TokenSource returns the persisted token, or "" when logged out. It is
// consulted on every request that has no other token.
type TokenSource func(ctx context.Context) (string, error)

type accessTokenKey struct{}

// WithAccessToken returns a context whose requests carry token regardless of
// the client's default. An empty token sends the request without the header.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func accessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok
}

// bearerTransport attaches the Authorization header. Requests that already
// carry one are left alone.
type bearerTransport struct {
	next   http.RoundTripper
	source TokenSource
	log    logging.Logger

	mu    sync.RWMutex
	token string
	// detached is set by an explicit SetToken(""). The source is skipped
	// until a new token is set, so a token that failed to be cleared from
	// storage is not sent again.
	detached bool
}

func (t *bearerTransport) setToken(token string) {
	t.mu.Lock()
	t.token = token
	t.detached = token == ""
	t.mu.Unlock()
}

func (t *bearerTransport) currentToken(ctx context.Context) string {
	if token, ok := accessTokenFromContext(ctx); ok {
		return token
	}

	t.mu.RLock()
	token, detached := t.token, t.detached
	t.mu.RUnlock()
	if token != "" {
		return token
	}

	if t.source == nil || detached {
		return ""
	}
	token, err := t.source(ctx)
	if err != nil {
		t.log.Warn(ctx, "reading persisted token failed", "error", err)
		return ""
	}
	return token
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(common.AuthorizationHeaderName) != "" {
		return t.next.RoundTrip(req)
	}

	token := t.currentToken(req.Context())
	if token == "" {
		return t.next.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	return t.next.RoundTrip(r)
}

// loggingTransport records method, path, status and duration at debug level.
type loggingTransport struct {
	next http.RoundTripper
	log  logging.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()
	resp, err := t.next.RoundTrip(req)

	ctx := req.Context()
	if err != nil {
		t.log.Debug(ctx, "http request failed",
			"method", req.Method, "path", req.URL.Path, "duration", time.Since(started), "error", err)
		return resp, err
	}
	t.log.Debug(ctx, "http request",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "duration", time.Since(started))
	return resp, nil
}
