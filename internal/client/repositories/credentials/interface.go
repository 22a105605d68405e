// Package credentials is the local cookie jar: named secrets that stop
// being returned once their expiry has passed.
package credentials

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns "" when the credential is missing or expired.
	Get(ctx context.Context, name string, now time.Time) (string, error)
	Set(ctx context.Context, name, value string, expiresAt time.Time) error
	Delete(ctx context.Context, name string) error
}
