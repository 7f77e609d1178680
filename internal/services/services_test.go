// internal/services/services_test.go
package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/persistence"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Session: config.SessionConfig{
			AdminEmail:    "admin@marketplace.com",
			AdminPassword: "admin123",
			DeletePolicy:  config.DeletePolicyRetain,
		},
	}
}

func openTestSession(t *testing.T) *store.Session {
	t.Helper()
	n := 0
	sess, err := store.Open(context.Background(), store.Options{
		Backend: persistence.NewMemoryBackend(),
		Identity: store.IdentityOptions{
			AdminEmail:    "admin@marketplace.com",
			AdminPassword: "admin123",
			DemoEmails: map[models.Role]string{
				models.RoleShopper: "john@example.com",
				models.RoleTrader:  "alex@techstore.com",
			},
		},
		Seed:  store.DefaultSeed(),
		Clock: func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	require.NoError(t, err)
	utils.SetJWTSecret("test-secret")
	return sess
}

func signIn(t *testing.T, sess *store.Session, email string, role models.Role) models.Identity {
	t.Helper()
	id, err := sess.Identity.Login(email, role)
	require.NoError(t, err)
	return id
}
