// internal/services/account_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
)

var ErrNotSignedIn = errors.New("not signed in")

type AccountService struct {
	sess          *store.Session
	notifications *NotificationService
	events        EventPublisher
	deletePolicy  string
}

func NewAccountService(sess *store.Session, notifications *NotificationService, events EventPublisher, deletePolicy string) *AccountService {
	return &AccountService{
		sess:          sess,
		notifications: notifications,
		events:        events,
		deletePolicy:  deletePolicy,
	}
}

func (s *AccountService) UpdateProfile(update models.IdentityUpdate) (models.Identity, error) {
	if _, ok := s.sess.Identity.Current(); !ok {
		return nil, ErrNotSignedIn
	}
	if err := s.sess.Identity.UpdateProfile(update); err != nil {
		return nil, err
	}
	s.notifications.Success(i18n.KeyUserProfileUpdated)

	id, _ := s.sess.Identity.Current()
	return id, nil
}

// DeleteAccount ends the session. Under the cascade policy the user's
// orders, comments, ratings and cart are purged and the directory entry
// dropped first. Under retain they are left in place.
func (s *AccountService) DeleteAccount(ctx context.Context) error {
	id, ok := s.sess.Identity.Current()
	if !ok {
		return ErrNotSignedIn
	}
	userID := id.Profile().ID

	if s.deletePolicy == config.DeletePolicyCascade {
		if err := s.sess.Catalog.PurgeUser(userID); err != nil {
			return fmt.Errorf("failed to purge user data: %w", err)
		}
		if err := s.sess.Identity.Forget(userID); err != nil {
			return fmt.Errorf("failed to remove user: %w", err)
		}
		if err := s.sess.Cart.ClearCart(); err != nil {
			return err
		}
	}

	if err := s.sess.Identity.DeleteAccount(); err != nil {
		return err
	}

	s.notifications.Success(i18n.KeyUserAccountDeleted)
	s.events.Publish(ctx, Event{
		Type:    EventAccountDeleted,
		Key:     userID,
		Payload: map[string]string{"user_id": userID, "policy": s.deletePolicy},
	})

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"policy":  s.deletePolicy,
	}).Info("Account deleted")
	return nil
}
