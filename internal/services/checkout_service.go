// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrShopperRequired = errors.New("only shoppers can use the cart")
)

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.RequireFromString("9.99")
)

// Quote is the checkout summary for the current cart.
type Quote struct {
	Items    []models.CartLine `json:"items"`
	Count    int               `json:"count"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	Shipping decimal.Decimal   `json:"shipping"`
	Total    decimal.Decimal   `json:"total"`
}

type CheckoutService struct {
	sess            *store.Session
	notifications   *NotificationService
	events          EventPublisher
	adjustInventory bool
}

func NewCheckoutService(sess *store.Session, notifications *NotificationService, events EventPublisher, adjustInventory bool) *CheckoutService {
	return &CheckoutService{
		sess:            sess,
		notifications:   notifications,
		events:          events,
		adjustInventory: adjustInventory,
	}
}

// ShippingFor returns the shipping charge: free above the threshold.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

func (s *CheckoutService) Quote() Quote {
	items := s.sess.Cart.Items()
	subtotal := s.sess.Cart.Total()

	q := Quote{
		Items:    items,
		Count:    s.sess.Cart.ItemCount(),
		Subtotal: subtotal,
		Shipping: decimal.Zero,
		Total:    subtotal,
	}
	if len(items) > 0 {
		q.Shipping = ShippingFor(subtotal)
		q.Total = subtotal.Add(q.Shipping)
	}
	return q
}

// Checkout turns the cart into a pending order for the signed-in shopper and
// empties the cart.
func (s *CheckoutService) Checkout(ctx context.Context) (models.Order, error) {
	id, ok := s.sess.Identity.Current()
	if !ok || id.Role() != models.RoleShopper {
		return models.Order{}, ErrShopperRequired
	}

	q := s.Quote()
	if len(q.Items) == 0 {
		s.notifications.Error(i18n.KeyCartEmpty)
		return models.Order{}, ErrEmptyCart
	}

	order, err := s.sess.Catalog.AddOrder(models.OrderInput{
		UserID: id.Profile().ID,
		Items:  q.Items,
		Total:  q.Total,
		Status: models.OrderStatusPending,
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	if s.adjustInventory {
		for _, line := range order.Items {
			if _, err := s.sess.Catalog.RecordSale(line.Product.ID, line.Quantity); err != nil {
				logrus.WithError(err).WithField("product_id", line.Product.ID).Error("Failed to record sale")
			}
		}
	}

	if err := s.sess.Cart.ClearCart(); err != nil {
		return order, fmt.Errorf("order placed but failed to clear cart: %w", err)
	}

	s.notifications.Success(i18n.KeyOrderPlaced)
	s.events.Publish(ctx, Event{
		Type:       EventOrderPlaced,
		Key:        order.ID,
		OccurredAt: order.CreatedAt,
		Payload:    order,
	})

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total.StringFixed(2),
	}).Info("Order placed")
	return order, nil
}
