package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/linkedin-clone/internal/common"
	"github.com/dmitrijs2005/linkedin-clone/internal/dbx"
)

// TokenStore persists the raw session token across process restarts.
// Load returns "" when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteTokenStore keeps the token in the local metadata table under
// common.TokenMetadataKey.
type SQLiteTokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db, now: time.Now}
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (string, error) {
	v, _, err := repo(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save writes the token and its timestamp in one transaction.
func (s *SQLiteTokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := repo(tx)
		if err := r.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		stamp := s.now().UTC().Format(time.RFC3339)
		return r.Set(ctx, common.TokenSavedAtMetadataKey, []byte(stamp))
	})
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	return repo(s.db).Delete(ctx, common.TokenMetadataKey, common.TokenSavedAtMetadataKey)
}

// SavedAt reports when the current token was stored.
func (s *SQLiteTokenStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := repo(s.db).Get(ctx, common.TokenSavedAtMetadataKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", common.TokenSavedAtMetadataKey, err)
	}
	return t, true, nil
}

func repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokenStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenStore) Clear(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
