// internal/persistence/backend.go
package persistence

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no blob has been saved under the name.
var ErrNotFound = errors.New("persistence: blob not found")

// Backend stores named, opaque state blobs. Each store owns one name and
// rewrites its whole blob on every mutation.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close() error
}
