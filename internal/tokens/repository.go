// Package tokens manages the opaque bearer tokens used for out-of-band
// verification flows such as calendar feed access. Tokens live in their own
// table with an expiry timestamp; issuance, validity checks, revocation and
// periodic purging are all handled here.
package tokens

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token is one persisted token row.
type Token struct {
	ID     string
	Expire time.Time
}

// Repository defines the token store operations.
type Repository interface {
	// Issue inserts a token for every id, all expiring TTL from now.
	Issue(ctx context.Context, ids []string) error

	// IsValid reports whether a token with the given id exists.
	IsValid(ctx context.Context, id string) (bool, error)

	// Revoke deletes a token. Revoking an unknown id is a no-op.
	Revoke(ctx context.Context, id string) error

	// PurgeExpired removes tokens whose expiry fell outside the retention
	// window and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

// NewID returns a fresh opaque token id.
func NewID() string {
	return uuid.NewString()
}
