// internal/store/cart.go
package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/models"
)

type cartState struct {
	Items []models.CartLine `json:"items"`
}

// CartStore holds the active shopper's pending lines. There is one line per
// product and every line has quantity >= 1. Stock is not checked here.
type CartStore struct {
	mu    sync.RWMutex
	blob  blob
	items []models.CartLine
}

func newCartStore(ctx context.Context, b blob) (*CartStore, error) {
	s := &CartStore{blob: b}

	var state cartState
	if _, err := b.load(ctx, &state); err != nil {
		return nil, err
	}
	for _, line := range state.Items {
		if line.Quantity > 0 {
			s.items = append(s.items, line)
		}
	}
	return s, nil
}

// AddToCart increments the product's line by quantity, or appends a new
// line. A line whose quantity would drop to zero or below is removed.
func (s *CartStore) AddToCart(product models.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity += quantity
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return s.persist()
	}

	if quantity <= 0 {
		return nil
	}
	s.items = append(s.items, models.CartLine{Product: product.Clone(), Quantity: quantity})
	return s.persist()
}

func (s *CartStore) RemoveFromCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

// UpdateQuantity sets the line's quantity. Zero or below removes the line.
func (s *CartStore) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = quantity
	return s.persist()
}

func (s *CartStore) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist()
}

// Items returns a copy of the lines in insertion order.
func (s *CartStore) Items() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartLine, len(s.items))
	for i, line := range s.items {
		out[i] = line.Clone()
	}
	return out
}

func (s *CartStore) Line(productID string) (models.CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.items[i].Clone(), true
	}
	return models.CartLine{}, false
}

// Total is the sum of price x quantity over all lines.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.items {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount is the number of units across all lines.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, line := range s.items {
		n += line.Quantity
	}
	return n
}

func (s *CartStore) indexOf(productID string) int {
	for i, line := range s.items {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *CartStore) persist() error {
	return s.blob.save(cartState{Items: s.items})
}
