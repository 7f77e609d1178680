// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("product belongs to another trader")
	ErrTraderRequired  = errors.New("only traders can manage products")
	ErrEmptyComment    = errors.New("comment is empty")
	ErrOutOfStock      = errors.New("product is out of stock")
)

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=3,max=255"`
	Description   string   `json:"description" validate:"required,min=10"`
	Price         string   `json:"price" validate:"required,price"`
	OriginalPrice string   `json:"original_price,omitempty" validate:"omitempty,price"`
	Images        []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Category      string   `json:"category" validate:"required"`
	Stock         int      `json:"stock" validate:"min=0"`
	IsPromoted    bool     `json:"is_promoted"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Price         *string  `json:"price,omitempty" validate:"omitempty,price"`
	OriginalPrice *string  `json:"original_price,omitempty" validate:"omitempty,price"`
	Images        []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Category      *string  `json:"category,omitempty"`
	Stock         *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsPromoted    *bool    `json:"is_promoted,omitempty"`
}

type ProductService struct {
	sess          *store.Session
	notifications *NotificationService
	events        EventPublisher
}

func NewProductService(sess *store.Session, notifications *NotificationService, events EventPublisher) *ProductService {
	return &ProductService{
		sess:          sess,
		notifications: notifications,
		events:        events,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Product{}, fmt.Errorf("validation failed: %w", err)
	}
	trader, err := s.currentTrader()
	if err != nil {
		return models.Product{}, err
	}

	input := models.ProductInput{
		TraderID:    trader.ID,
		TraderName:  trader.ShopName,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       decimal.RequireFromString(req.Price),
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		IsPromoted:  req.IsPromoted,
	}
	if req.OriginalPrice != "" {
		op := decimal.RequireFromString(req.OriginalPrice)
		input.OriginalPrice = &op
	}

	product, err := s.sess.Catalog.AddProduct(input)
	if err != nil {
		return models.Product{}, err
	}

	s.notifications.Success(i18n.KeyProductCreated)
	s.events.Publish(ctx, Event{Type: EventProductCreated, Key: product.ID, OccurredAt: product.CreatedAt, Payload: product})

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"trader_id":  trader.ID,
	}).Info("Product created")
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Product{}, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := s.ownedProduct(productID); err != nil {
		return models.Product{}, err
	}

	update := models.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		IsPromoted:  req.IsPromoted,
	}
	if req.Price != nil {
		p := decimal.RequireFromString(*req.Price)
		update.Price = &p
	}
	if req.OriginalPrice != nil {
		op := decimal.RequireFromString(*req.OriginalPrice)
		update.OriginalPrice = &op
	}

	if _, err := s.sess.Catalog.UpdateProduct(productID, update); err != nil {
		return models.Product{}, err
	}
	product, ok := s.sess.Catalog.Product(productID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	s.notifications.Success(i18n.KeyProductUpdated)
	s.events.Publish(ctx, Event{Type: EventProductUpdated, Key: productID, Payload: product})
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := s.ownedProduct(productID); err != nil {
		return err
	}
	if _, err := s.sess.Catalog.DeleteProduct(productID); err != nil {
		return err
	}

	s.notifications.Success(i18n.KeyProductDeleted)
	s.events.Publish(ctx, Event{Type: EventProductDeleted, Key: productID, Payload: map[string]string{"product_id": productID}})
	return nil
}

// Rate records the signed-in user's rating and returns the product with its
// refreshed average.
func (s *ProductService) Rate(ctx context.Context, productID string, value int) (models.Product, error) {
	id, ok := s.sess.Identity.Current()
	if !ok {
		return models.Product{}, ErrNotSignedIn
	}
	if _, ok := s.sess.Catalog.Product(productID); !ok {
		return models.Product{}, ErrProductNotFound
	}

	rating, err := s.sess.Catalog.AddRating(productID, id.Profile().ID, value)
	if err != nil {
		return models.Product{}, err
	}
	product, _ := s.sess.Catalog.Product(productID)

	s.notifications.Success(i18n.KeyProductRated)
	s.events.Publish(ctx, Event{
		Type:       EventProductRated,
		Key:        productID,
		OccurredAt: rating.CreatedAt,
		Payload: map[string]interface{}{
			"rating":       rating,
			"average":      product.Rating,
			"rating_count": product.RatingCount,
		},
	})
	return product, nil
}

func (s *ProductService) Comment(productID, content string) (models.Comment, error) {
	id, ok := s.sess.Identity.Current()
	if !ok {
		return models.Comment{}, ErrNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, ErrEmptyComment
	}
	if _, ok := s.sess.Catalog.Product(productID); !ok {
		return models.Comment{}, ErrProductNotFound
	}

	profile := id.Profile()
	comment, err := s.sess.Catalog.AddComment(productID, profile.ID, profile.Name, profile.Avatar, content)
	if err != nil {
		return models.Comment{}, err
	}
	s.notifications.Success(i18n.KeyProductCommented)
	return comment, nil
}

// AddToCart adds quantity units of a catalog product to the shopper's cart.
// A quantity below one adds a single unit.
func (s *ProductService) AddToCart(productID string, quantity int) (models.CartLine, error) {
	id, ok := s.sess.Identity.Current()
	if !ok || id.Role() != models.RoleShopper {
		return models.CartLine{}, ErrShopperRequired
	}
	product, ok := s.sess.Catalog.Product(productID)
	if !ok {
		return models.CartLine{}, ErrProductNotFound
	}
	if product.Stock <= 0 {
		s.notifications.Error(i18n.KeyProductOutOfStock)
		return models.CartLine{}, ErrOutOfStock
	}
	if quantity < 1 {
		quantity = 1
	}

	if err := s.sess.Cart.AddToCart(product, quantity); err != nil {
		return models.CartLine{}, err
	}
	line, _ := s.sess.Cart.Line(productID)

	s.notifications.Success(i18n.KeyCartAdded, fmt.Sprintf("%d × %s", quantity, product.Name))
	return line, nil
}

func (s *ProductService) currentTrader() (models.Trader, error) {
	id, ok := s.sess.Identity.Current()
	if !ok {
		return models.Trader{}, ErrNotSignedIn
	}
	trader, ok := id.(models.Trader)
	if !ok {
		return models.Trader{}, ErrTraderRequired
	}
	return trader, nil
}

func (s *ProductService) ownedProduct(productID string) (models.Product, error) {
	trader, err := s.currentTrader()
	if err != nil {
		return models.Product{}, err
	}
	product, ok := s.sess.Catalog.Product(productID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	if product.TraderID != trader.ID {
		return models.Product{}, ErrNotOwner
	}
	return product, nil
}
