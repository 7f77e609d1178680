// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	// Zero or less removes the line.
	Quantity int `json:"quantity"`
}

type CartHandler struct {
	cart            *store.CartStore
	productService  *services.ProductService
	checkoutService *services.CheckoutService
	notifications   *services.NotificationService
}

func NewCartHandler(cart *store.CartStore, productService *services.ProductService, checkoutService *services.CheckoutService, notifications *services.NotificationService) *CartHandler {
	return &CartHandler{
		cart:            cart,
		productService:  productService,
		checkoutService: checkoutService,
		notifications:   notifications,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	utils.SuccessResponse(c, h.checkoutService.Quote())
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.productService.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"line": line,
		"cart": h.checkoutService.Quote(),
	})
}

// PUT /cart/items/:product_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID := c.Param("product_id")

	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, ok := h.cart.Line(productID); !ok {
		utils.NotFoundResponse(c, "product")
		return
	}
	if err := h.cart.UpdateQuantity(productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	key := i18n.KeyCartUpdated
	if req.Quantity <= 0 {
		key = i18n.KeyCartRemoved
	}
	h.notifications.Success(key)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, key),
		"cart":    h.checkoutService.Quote(),
	})
}

// DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID := c.Param("product_id")

	if _, ok := h.cart.Line(productID); !ok {
		utils.NotFoundResponse(c, "product")
		return
	}
	if err := h.cart.RemoveFromCart(productID); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Success(i18n.KeyCartRemoved)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartRemoved),
		"cart":    h.checkoutService.Quote(),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.cart.ClearCart(); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Success(i18n.KeyCartCleared)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	order, err := h.checkoutService.Checkout(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}
