// Package metadata stores small named blobs in the local database. The
// session layer keeps the projected identity here under the "user" key.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
