// Package settings persists ambient key/value preferences such as the
// current session pointer and the UI theme.
package settings

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
