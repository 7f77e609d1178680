// internal/store/store_test.go
package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/persistence"
)

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func testIdentityOptions() IdentityOptions {
	return IdentityOptions{
		AdminEmail:    "admin@marketplace.com",
		AdminPassword: "admin123",
		DemoEmails: map[models.Role]string{
			models.RoleShopper: "john@example.com",
			models.RoleTrader:  "alex@techstore.com",
		},
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testOptions(backend persistence.Backend) Options {
	return Options{
		Backend:  backend,
		Identity: testIdentityOptions(),
		Seed:     DefaultSeed(),
		Clock:    func() time.Time { return testNow },
		NewID:    sequentialIDs(),
	}
}

func openTestSession(t *testing.T, backend persistence.Backend) *Session {
	t.Helper()
	sess, err := Open(context.Background(), testOptions(backend))
	require.NoError(t, err)
	return sess
}

func seededProduct(t *testing.T, sess *Session, id string) models.Product {
	t.Helper()
	p, ok := sess.Catalog.Product(id)
	require.True(t, ok, "product %s should be seeded", id)
	return p
}
