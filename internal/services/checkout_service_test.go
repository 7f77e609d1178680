// internal/services/checkout_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
)

func TestShippingFor(t *testing.T) {
	tests := []struct {
		subtotal string
		want     string
	}{
		{"0", "9.99"},
		{"99.00", "9.99"},
		{"100.00", "9.99"},
		{"100.01", "0"},
		{"249.99", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			got := ShippingFor(decimal.RequireFromString(tt.subtotal))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestCheckoutQuoteEmptyCart(t *testing.T) {
	sess := openTestSession(t)
	svc := NewCheckoutService(sess, NewNotificationService("en", 0), &recordingPublisher{}, false)

	q := svc.Quote()
	assert.Empty(t, q.Items)
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.IsZero())
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	sess := openTestSession(t)
	events := &recordingPublisher{}
	notifications := NewNotificationService("en", 0)
	products := NewProductService(sess, notifications, events)
	svc := NewCheckoutService(sess, notifications, events, false)

	signIn(t, sess, "john@example.com", models.RoleShopper)
	_, err := products.AddToCart("product-5", 2)
	require.NoError(t, err)

	q := svc.Quote()
	assert.Equal(t, "99.00", q.Subtotal.StringFixed(2))
	assert.Equal(t, "9.99", q.Shipping.StringFixed(2))
	assert.Equal(t, "108.99", q.Total.StringFixed(2))

	order, err := svc.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "108.99", order.Total.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Empty(t, sess.Cart.Items())
	assert.Len(t, sess.Catalog.UserOrders("user-1"), 3)
	assert.Contains(t, events.types(), EventOrderPlaced)
	assert.Equal(t, i18n.KeyOrderPlaced, notifications.Recent(1)[0].Key)

	// inventory is untouched by default
	p, _ := sess.Catalog.Product("product-5")
	assert.Equal(t, 200, p.Stock)
	assert.Equal(t, 420, p.Sold)
}

func TestCheckoutFreeShipping(t *testing.T) {
	sess := openTestSession(t)
	notifications := NewNotificationService("en", 0)
	products := NewProductService(sess, notifications, &recordingPublisher{})
	svc := NewCheckoutService(sess, notifications, &recordingPublisher{}, false)

	signIn(t, sess, "john@example.com", models.RoleShopper)
	_, err := products.AddToCart("product-1", 1)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "249.99", order.Total.StringFixed(2))
}

func TestCheckoutAdjustsInventory(t *testing.T) {
	sess := openTestSession(t)
	notifications := NewNotificationService("en", 0)
	products := NewProductService(sess, notifications, &recordingPublisher{})
	svc := NewCheckoutService(sess, notifications, &recordingPublisher{}, true)

	signIn(t, sess, "john@example.com", models.RoleShopper)
	_, err := products.AddToCart("product-5", 3)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background())
	require.NoError(t, err)

	p, _ := sess.Catalog.Product("product-5")
	assert.Equal(t, 197, p.Stock)
	assert.Equal(t, 423, p.Sold)
}

func TestCheckoutRejectsEmptyCartAndNonShoppers(t *testing.T) {
	sess := openTestSession(t)
	notifications := NewNotificationService("en", 0)
	svc := NewCheckoutService(sess, notifications, &recordingPublisher{}, false)

	_, err := svc.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrShopperRequired)

	signIn(t, sess, "alex@techstore.com", models.RoleTrader)
	_, err = svc.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrShopperRequired)

	signIn(t, sess, "john@example.com", models.RoleShopper)
	_, err = svc.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, NotificationError, notifications.Recent(1)[0].Level)
	assert.Len(t, sess.Catalog.UserOrders("user-1"), 2)
}
