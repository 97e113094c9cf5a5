// Package metadata stores small named values in the local client database.
// The session token and the time it was saved live here under fixed keys.
package metadata

import (
	"context"
)

// Repository is a key/value store over the metadata table.
type Repository interface {
	// Get reports ok=false for a key that was never set or was deleted.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes every listed key. Unknown keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
