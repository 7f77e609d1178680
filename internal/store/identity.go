// internal/store/identity.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/javajoker/marketplace/internal/models"
)

var (
	ErrAdminLoginRequired = errors.New("admin accounts must sign in with email and password")
	ErrUnknownRole        = errors.New("unknown role")
)

const AdminID = "admin-1"

// IdentityOptions holds the mock credentials the identity store accepts.
type IdentityOptions struct {
	AdminEmail    string
	AdminPassword string
	DemoEmails    map[models.Role]string
}

type directory struct {
	Shoppers []models.Shopper `json:"shoppers"`
	Traders  []models.Trader  `json:"traders"`
}

type identityState struct {
	User            json.RawMessage `json:"user"`
	IsAuthenticated bool            `json:"is_authenticated"`
	Directory       directory       `json:"directory"`
}

// IdentityStore owns the current session identity. There is at most one
// current identity; nil means anonymous.
type IdentityStore struct {
	mu            sync.RWMutex
	blob          blob
	opts          IdentityOptions
	current       models.Identity
	authenticated bool
	dir           directory
	now           func() time.Time
	newID         func() string
}

func newIdentityStore(ctx context.Context, b blob, opts IdentityOptions, seed Seed, now func() time.Time, newID func() string) (*IdentityStore, error) {
	s := &IdentityStore{
		blob:  b,
		opts:  opts,
		now:   now,
		newID: newID,
		dir: directory{
			Shoppers: append([]models.Shopper(nil), seed.Shoppers...),
			Traders:  append([]models.Trader(nil), seed.Traders...),
		},
	}

	var state identityState
	found, err := b.load(ctx, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return s, nil
	}

	current, err := models.DecodeIdentity(state.User)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", b.name, err)
	}
	s.current = current
	s.authenticated = state.IsAuthenticated && current != nil
	s.dir = state.Directory
	return s, nil
}

// Current returns the session identity, or false when anonymous.
func (s *IdentityStore) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

func (s *IdentityStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Login signs in as the seeded identity with this email, or synthesizes a
// new one with defaults. There is no password check.
func (s *IdentityStore) Login(email string, role models.Role) (models.Identity, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	var id models.Identity
	switch role {
	case models.RoleShopper:
		id = s.findOrCreateShopper(email)
	case models.RoleTrader:
		id = s.findOrCreateTrader(email)
	case models.RoleAdmin:
		return nil, ErrAdminLoginRequired
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	s.current = id
	s.authenticated = true
	return id, s.persist()
}

// LoginAsDemo signs in with the fixed demo email for the role.
func (s *IdentityStore) LoginAsDemo(role models.Role) (models.Identity, error) {
	email, ok := s.opts.DemoEmails[role]
	if !ok {
		return nil, fmt.Errorf("%w: no demo account for %q", ErrUnknownRole, role)
	}
	return s.Login(email, role)
}

// AdminLogin succeeds only for the configured credential pair. On failure
// the current identity is left unchanged.
func (s *IdentityStore) AdminLogin(email, password string) (bool, error) {
	if email != s.opts.AdminEmail || password != s.opts.AdminPassword {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.Admin{Account: models.Account{
		ID:        AdminID,
		Email:     s.opts.AdminEmail,
		Name:      "Admin",
		CreatedAt: s.now(),
	}}
	s.authenticated = true
	return true, s.persist()
}

func (s *IdentityStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.authenticated = false
	return s.persist()
}

// UpdateProfile merges the non-nil fields into the current identity. It is
// a no-op when nobody is signed in.
func (s *IdentityStore) UpdateProfile(update models.IdentityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	s.current = update.Apply(s.current)
	s.syncDirectory(s.current)
	return s.persist()
}

// DeleteAccount ends the session. It does not touch the user's orders,
// comments or ratings; see services.AccountService for the cascade policy.
func (s *IdentityStore) DeleteAccount() error {
	return s.Logout()
}

// Forget removes a shopper or trader from the directory.
func (s *IdentityStore) Forget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shoppers := s.dir.Shoppers[:0]
	for _, u := range s.dir.Shoppers {
		if u.ID != id {
			shoppers = append(shoppers, u)
		}
	}
	s.dir.Shoppers = shoppers

	traders := s.dir.Traders[:0]
	for _, t := range s.dir.Traders {
		if t.ID != id {
			traders = append(traders, t)
		}
	}
	s.dir.Traders = traders
	return s.persist()
}

func (s *IdentityStore) Shoppers() []models.Shopper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Shopper(nil), s.dir.Shoppers...)
}

func (s *IdentityStore) Traders() []models.Trader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Trader(nil), s.dir.Traders...)
}

// SetTraderVerified flips a trader's verified badge. It reports whether the
// trader exists.
func (s *IdentityStore) SetTraderVerified(traderID string, verified bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.dir.Traders {
		if s.dir.Traders[i].ID == traderID {
			s.dir.Traders[i].Verified = verified
			found = true
		}
	}
	if !found {
		return false, nil
	}
	if t, ok := s.current.(models.Trader); ok && t.ID == traderID {
		t.Verified = verified
		s.current = t
	}
	return true, s.persist()
}

func (s *IdentityStore) findOrCreateShopper(email string) models.Shopper {
	for _, u := range s.dir.Shoppers {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	u := models.Shopper{Account: models.Account{
		ID:        s.newID(),
		Email:     email,
		Name:      localPart(email),
		CreatedAt: s.now(),
	}}
	s.dir.Shoppers = append(s.dir.Shoppers, u)
	return u
}

func (s *IdentityStore) findOrCreateTrader(email string) models.Trader {
	for _, t := range s.dir.Traders {
		if strings.EqualFold(t.Email, email) {
			return t
		}
	}
	t := models.Trader{
		Account: models.Account{
			ID:        s.newID(),
			Email:     email,
			Name:      localPart(email),
			CreatedAt: s.now(),
		},
		ShopName:        "My Shop",
		ShopDescription: "Welcome to my shop!",
	}
	s.dir.Traders = append(s.dir.Traders, t)
	return t
}

func (s *IdentityStore) syncDirectory(id models.Identity) {
	switch v := id.(type) {
	case models.Shopper:
		for i := range s.dir.Shoppers {
			if s.dir.Shoppers[i].ID == v.ID {
				s.dir.Shoppers[i] = v
			}
		}
	case models.Trader:
		for i := range s.dir.Traders {
			if s.dir.Traders[i].ID == v.ID {
				s.dir.Traders[i] = v
			}
		}
	case models.Admin:
		// admins are not listed
	}
}

// persist must be called with s.mu held.
func (s *IdentityStore) persist() error {
	user, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.blob.save(identityState{
		User:            user,
		IsAuthenticated: s.authenticated,
		Directory:       s.dir,
	})
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
