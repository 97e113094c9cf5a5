package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linkedin-clone/internal/dbx"
)

// SQLiteRepository implements Repository on top of the migrated metadata
// table. The handle may be a *sql.DB or a transaction from dbx.WithTx.
type SQLiteRepository struct {
	q dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(q dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{q: q}
}

const (
	selectValue = `SELECT value FROM metadata WHERE key = ?`
	upsertValue = `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	switch err := r.q.QueryRowContext(ctx, selectValue, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("metadata: read %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.q.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("metadata: write %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (`+marks+`)`, args...); err != nil {
		return fmt.Errorf("metadata: delete %s: %w", strings.Join(keys, ", "), err)
	}
	return nil
}
