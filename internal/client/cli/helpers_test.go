package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/apitest"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/config"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

// syncBuffer is an io.Writer safe to read while the session watcher writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	b.buf.Reset()
	b.mu.Unlock()
}

func testConfig(srv *apitest.Server, dbPath string) *config.Config {
	return &config.Config{
		APIBaseURL:      srv.BaseURL(),
		RequestTimeout:  5 * time.Second,
		DatabasePath:    dbPath,
		NotificationTTL: time.Minute,
	}
}

func newTestApp(t *testing.T, srv *apitest.Server) (*App, *syncBuffer) {
	t.Helper()
	return newTestAppAt(t, srv, filepath.Join(t.TempDir(), "client.db"))
}

func newTestAppAt(t *testing.T, srv *apitest.Server, dbPath string) (*App, *syncBuffer) {
	t.Helper()
	a, err := NewApp(context.Background(), testConfig(srv, dbPath), logging.Discard())
	require.NoError(t, err)
	out := &syncBuffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(""))
	return a, out
}

// stubPrompts feeds getSimpleText, getPassword and getMultiline from fixed
// answers, in order.
func stubPrompts(t *testing.T, texts []string, password string, multis ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(multis) == 0 {
			return "", io.EOF
		}
		next := multis[0]
		multis = multis[1:]
		return next, nil
	}
}

func silenceREPL(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}
