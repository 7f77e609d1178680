// internal/store/persist.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/javajoker/marketplace/internal/persistence"
)

// Names of the three persisted blobs.
const (
	IdentityBlob = "auth-storage"
	CartBlob     = "cart-storage"
	CatalogBlob  = "product-storage"
)

// blob serializes one store's state under its name.
type blob struct {
	backend persistence.Backend
	name    string
	timeout time.Duration
}

// load decodes the saved state into v. It reports false when nothing has
// been saved yet.
func (b blob) load(ctx context.Context, v interface{}) (bool, error) {
	data, err := b.backend.Load(ctx, b.name)
	if errors.Is(err, persistence.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", b.name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", b.name, err)
	}
	return true, nil
}

func (b blob) save(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.name, err)
	}

	ctx := context.Background()
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	if err := b.backend.Save(ctx, b.name, data); err != nil {
		return fmt.Errorf("persist %s: %w", b.name, err)
	}
	return nil
}
