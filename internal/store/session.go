// internal/store/session.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/persistence"
	"github.com/javajoker/marketplace/internal/utils"
)

type Options struct {
	Backend  persistence.Backend
	Timeout  time.Duration
	Identity IdentityOptions
	Seed     Seed

	// KeepSignedIn leaves the current identity in place on Close so a
	// restarted process resumes the same login.
	KeepSignedIn bool

	// Clock and NewID default to time.Now and uuid strings.
	Clock func() time.Time
	NewID func() string
}

// Session is the single logical actor's view of the marketplace. It owns the
// three stores and nothing else; cross-store work belongs to services.
type Session struct {
	Identity *IdentityStore
	Cart     *CartStore
	Catalog  *CatalogStore

	keepSignedIn bool
}

// Open hydrates the stores from their blobs. A blob that was never saved
// starts from opts.Seed.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	identity, err := newIdentityStore(ctx, opts.blob(IdentityBlob), opts.Identity, opts.Seed, opts.Clock, opts.NewID)
	if err != nil {
		return nil, err
	}
	cart, err := newCartStore(ctx, opts.blob(CartBlob))
	if err != nil {
		return nil, err
	}
	catalog, err := newCatalogStore(ctx, opts.blob(CatalogBlob), opts.Seed, opts.Clock, opts.NewID, utils.ReferralCode)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"authenticated": identity.IsAuthenticated(),
		"cart_items":    cart.ItemCount(),
		"products":      len(catalog.Products()),
	}).Info("Session opened")

	return &Session{Identity: identity, Cart: cart, Catalog: catalog, keepSignedIn: opts.KeepSignedIn}, nil
}

// Close ends the session. Unless KeepSignedIn was set the identity is signed
// out and persisted, so the next Open starts anonymous; cart and catalog
// blobs survive either way. The backend is owned by the caller and stays open.
func (s *Session) Close() error {
	if !s.keepSignedIn {
		if err := s.Identity.Logout(); err != nil {
			return err
		}
	}
	logrus.WithField("signed_in", s.Identity.IsAuthenticated()).Info("Session closed")
	return nil
}

func (o Options) blob(name string) blob {
	return blob{backend: o.Backend, name: name, timeout: o.Timeout}
}
