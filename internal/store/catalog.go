// internal/store/catalog.go
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/models"
)

var (
	ErrInvalidRating      = fmt.Errorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type catalogState struct {
	Products []models.Product `json:"products"`
	Comments []models.Comment `json:"comments"`
	Ratings  []models.Rating  `json:"ratings"`
	Orders   []models.Order   `json:"orders"`
}

// ratingTally is the running sum and count of one product's ratings.
type ratingTally struct {
	sum   int
	count int
}

func (t ratingTally) mean() float64 {
	if t.count == 0 {
		return 0
	}
	avg := decimal.NewFromInt(int64(t.sum)).Div(decimal.NewFromInt(int64(t.count)))
	return avg.Round(1).InexactFloat64()
}

type ratingKey struct {
	productID string
	userID    string
}

// CatalogStore owns products, comments, ratings and orders.
//
// A product's rating and rating count are derived from its ratings. They are
// kept current from a per-product tally that AddRating updates in place, so
// no write rescans the rating list.
type CatalogStore struct {
	mu        sync.RWMutex
	blob      blob
	state     catalogState
	tallies   map[string]ratingTally
	ratingIdx map[ratingKey]int

	now          func() time.Time
	newID        func() string
	referralCode func(traderName string) (string, error)
}

func newCatalogStore(ctx context.Context, b blob, seed Seed, now func() time.Time, newID func() string, referralCode func(string) (string, error)) (*CatalogStore, error) {
	s := &CatalogStore{
		blob:         b,
		now:          now,
		newID:        newID,
		referralCode: referralCode,
	}

	found, err := b.load(ctx, &s.state)
	if err != nil {
		return nil, err
	}
	if !found {
		s.state = seed.catalog()
	}
	s.reindex()
	return s, nil
}

// reindex rebuilds the tallies and the rating index from the rating list and
// rewrites every product's derived rating fields.
func (s *CatalogStore) reindex() {
	s.tallies = make(map[string]ratingTally)
	s.ratingIdx = make(map[ratingKey]int, len(s.state.Ratings))
	for i, r := range s.state.Ratings {
		s.ratingIdx[ratingKey{r.ProductID, r.UserID}] = i
		t := s.tallies[r.ProductID]
		t.sum += r.Value
		t.count++
		s.tallies[r.ProductID] = t
	}
	for i := range s.state.Products {
		t := s.tallies[s.state.Products[i].ID]
		s.state.Products[i].Rating = t.mean()
		s.state.Products[i].RatingCount = t.count
	}
}

// AddProduct assigns an id, a referral code and the creation time. Sold and
// rating counters start at zero.
func (s *CatalogStore) AddProduct(in models.ProductInput) (models.Product, error) {
	code, err := s.referralCode(in.TraderName)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to generate referral code: %w", err)
	}

	p := models.Product{
		ID:           s.newID(),
		TraderID:     in.TraderID,
		TraderName:   in.TraderName,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Images:       append([]string(nil), in.Images...),
		Category:     in.Category,
		Stock:        in.Stock,
		ReferralCode: code,
		CreatedAt:    s.now(),
		IsPromoted:   in.IsPromoted,
	}
	if in.OriginalPrice != nil {
		op := *in.OriginalPrice
		p.OriginalPrice = &op
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Products = append(s.state.Products, p)
	return p.Clone(), s.persist()
}

// UpdateProduct applies a partial edit. It reports false, and does nothing,
// when the id is unknown.
func (s *CatalogStore) UpdateProduct(id string, update models.ProductUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return false, nil
	}
	update.Apply(&s.state.Products[i])
	return true, s.persist()
}

func (s *CatalogStore) DeleteProduct(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return false, nil
	}
	s.state.Products = append(s.state.Products[:i], s.state.Products[i+1:]...)
	return true, s.persist()
}

// AddComment appends a comment. Comments cannot be edited or removed.
func (s *CatalogStore) AddComment(productID, userID, userName, userAvatar, content string) (models.Comment, error) {
	c := models.Comment{
		ID:         s.newID(),
		ProductID:  productID,
		UserID:     userID,
		UserName:   userName,
		UserAvatar: userAvatar,
		Content:    content,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Comments = append(s.state.Comments, c)
	return c, s.persist()
}

// AddRating upserts the (product, user) rating and rewrites the product's
// rating and rating count.
func (s *CatalogStore) AddRating(productID, userID string, value int) (models.Rating, error) {
	if value < models.MinRating || value > models.MaxRating {
		return models.Rating{}, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tallies[productID]
	key := ratingKey{productID, userID}

	var r models.Rating
	if i, ok := s.ratingIdx[key]; ok {
		t.sum += value - s.state.Ratings[i].Value
		s.state.Ratings[i].Value = value
		s.state.Ratings[i].CreatedAt = s.now()
		r = s.state.Ratings[i]
	} else {
		r = models.Rating{
			ID:        s.newID(),
			ProductID: productID,
			UserID:    userID,
			Value:     value,
			CreatedAt: s.now(),
		}
		s.ratingIdx[key] = len(s.state.Ratings)
		s.state.Ratings = append(s.state.Ratings, r)
		t.sum += value
		t.count++
	}
	s.tallies[productID] = t

	if i := s.productIndex(productID); i >= 0 {
		s.state.Products[i].Rating = t.mean()
		s.state.Products[i].RatingCount = t.count
	}
	return r, s.persist()
}

func (s *CatalogStore) UserRating(productID, userID string) (models.Rating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.ratingIdx[ratingKey{productID, userID}]; ok {
		return s.state.Ratings[i], true
	}
	return models.Rating{}, false
}

// ProductComments returns the product's comments in insertion order.
func (s *CatalogStore) ProductComments(productID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Comment{}
	for _, c := range s.state.Comments {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out
}

// AddOrder snapshots the lines and total. Status defaults to pending.
// Product stock and sold counters are not touched.
func (s *CatalogStore) AddOrder(in models.OrderInput) (models.Order, error) {
	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !status.Valid() {
		return models.Order{}, ErrInvalidOrderStatus
	}

	o := models.Order{
		ID:        s.newID(),
		UserID:    in.UserID,
		Items:     make([]models.CartLine, len(in.Items)),
		Total:     in.Total,
		Status:    status,
		CreatedAt: s.now(),
	}
	for i, line := range in.Items {
		o.Items[i] = line.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Orders = append(s.state.Orders, o)
	return o.Clone(), s.persist()
}

// UserOrders returns the user's orders in insertion order.
func (s *CatalogStore) UserOrders(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Order{}
	for _, o := range s.state.Orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *CatalogStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.state.Orders))
	for i, o := range s.state.Orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *CatalogStore) UpdateOrderStatus(orderID string, status models.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidOrderStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].ID == orderID {
			s.state.Orders[i].Status = status
			return true, s.persist()
		}
	}
	return false, nil
}

// RecordSale moves quantity units from stock to sold. Stock does not go
// below zero.
func (s *CatalogStore) RecordSale(productID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(productID)
	if i < 0 {
		return false, nil
	}
	p := &s.state.Products[i]
	p.Sold += quantity
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	return true, s.persist()
}

// PurgeUser removes every order, comment and rating owned by the user and
// re-derives product ratings.
func (s *CatalogStore) PurgeUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.state.Orders[:0]
	for _, o := range s.state.Orders {
		if o.UserID != userID {
			orders = append(orders, o)
		}
	}
	s.state.Orders = orders

	comments := s.state.Comments[:0]
	for _, c := range s.state.Comments {
		if c.UserID != userID {
			comments = append(comments, c)
		}
	}
	s.state.Comments = comments

	ratings := s.state.Ratings[:0]
	for _, r := range s.state.Ratings {
		if r.UserID != userID {
			ratings = append(ratings, r)
		}
	}
	s.state.Ratings = ratings

	s.reindex()
	return s.persist()
}

func (s *CatalogStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.state.Products))
	for i, p := range s.state.Products {
		out[i] = p.Clone()
	}
	return out
}

func (s *CatalogStore) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.productIndex(id); i >= 0 {
		return s.state.Products[i].Clone(), true
	}
	return models.Product{}, false
}

func (s *CatalogStore) productIndex(id string) int {
	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CatalogStore) persist() error {
	return s.blob.save(s.state)
}
