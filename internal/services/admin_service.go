// internal/services/admin_service.go
package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
)

var (
	ErrTraderNotFound = errors.New("trader not found")
	ErrOrderNotFound  = errors.New("order not found")
)

type AdminUserFilter struct {
	Search string
}

type AdminOrderFilter struct {
	Status models.OrderStatus
	UserID string
}

type AdminService struct {
	sess          *store.Session
	notifications *NotificationService
}

func NewAdminService(sess *store.Session, notifications *NotificationService) *AdminService {
	return &AdminService{
		sess:          sess,
		notifications: notifications,
	}
}

func (s *AdminService) GetShoppers(filter AdminUserFilter) []models.Shopper {
	out := []models.Shopper{}
	for _, u := range s.sess.Identity.Shoppers() {
		if matchesAccount(u.Account, filter.Search) {
			out = append(out, u)
		}
	}
	return out
}

func (s *AdminService) GetTraders(filter AdminUserFilter) []models.Trader {
	out := []models.Trader{}
	for _, t := range s.sess.Identity.Traders() {
		if matchesAccount(t.Account, filter.Search) || containsFold(t.ShopName, filter.Search) {
			out = append(out, t)
		}
	}
	return out
}

func (s *AdminService) SetTraderVerified(traderID string, verified bool) error {
	found, err := s.sess.Identity.SetTraderVerified(traderID, verified)
	if err != nil {
		return err
	}
	if !found {
		return ErrTraderNotFound
	}

	if verified {
		s.notifications.Success(i18n.KeyTraderVerified)
	} else {
		s.notifications.Success(i18n.KeyTraderUnverified)
	}
	logrus.WithFields(logrus.Fields{
		"trader_id": traderID,
		"verified":  verified,
	}).Info("Trader verification changed")
	return nil
}

func (s *AdminService) GetOrders(filter AdminOrderFilter) []models.Order {
	out := []models.Order{}
	for _, o := range s.sess.Catalog.Orders() {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s *AdminService) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	found, err := s.sess.Catalog.UpdateOrderStatus(orderID, status)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}

	s.notifications.Success(i18n.KeyOrderStatusUpdated)
	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("Order status updated")
	return nil
}

// RemoveProduct takes down any trader's listing.
func (s *AdminService) RemoveProduct(productID string) error {
	found, err := s.sess.Catalog.DeleteProduct(productID)
	if err != nil {
		return err
	}
	if !found {
		return ErrProductNotFound
	}
	s.notifications.Success(i18n.KeyProductDeleted)
	return nil
}

func matchesAccount(a models.Account, search string) bool {
	return search == "" || containsFold(a.Name, search) || containsFold(a.Email, search)
}

func containsFold(s, substr string) bool {
	return substr != "" && strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
