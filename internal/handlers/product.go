// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/middleware"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

const defaultFeaturedLimit = 4

type RateProductRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// ProductView adds the computed discount to a product.
type ProductView struct {
	models.Product
	Discount int `json:"discount"`
}

func newProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p, Discount: p.Discount()}
	}
	return views
}

type ProductHandler struct {
	catalog        *store.CatalogStore
	productService *services.ProductService
	notifications  *services.NotificationService
	baseURL        string
}

func NewProductHandler(catalog *store.CatalogStore, productService *services.ProductService, notifications *services.NotificationService, baseURL string) *ProductHandler {
	return &ProductHandler{
		catalog:        catalog,
		productService: productService,
		notifications:  notifications,
		baseURL:        baseURL,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := store.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		TraderID: c.Query("trader_id"),
	}

	if sort := store.SortOrder(c.Query("sort")); sort.Valid() {
		query.Sort = sort
	}

	if priceMinStr := c.Query("min_price"); priceMinStr != "" {
		if priceMin, err := decimal.NewFromString(priceMinStr); err == nil {
			query.MinPrice = &priceMin
		}
	}

	if priceMaxStr := c.Query("max_price"); priceMaxStr != "" {
		if priceMax, err := decimal.NewFromString(priceMaxStr); err == nil {
			query.MaxPrice = &priceMax
		}
	}

	products := newProductViews(h.catalog.Search(query))

	result := utils.Paginate(products, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeaturedLimit)))
	if err != nil {
		limit = defaultFeaturedLimit
	}

	utils.SuccessResponse(c, newProductViews(h.catalog.Featured(limit)))
}

// GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories": append([]string{store.AllCategories}, h.catalog.Categories()...),
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "product")
		return
	}

	response := gin.H{
		"product":       ProductView{Product: product, Discount: product.Discount()},
		"comments":      h.catalog.ProductComments(product.ID),
		"referral_link": product.ReferralLink(h.baseURL),
	}

	// Signed-in callers also get their own rating, if any.
	if id, ok := middleware.GetIdentity(c); ok {
		if rating, found := h.catalog.UserRating(product.ID, id.Profile().ID); found {
			response["my_rating"] = rating
		}
	}

	utils.SuccessResponse(c, response)
}

// GET /products/:id/comments
func (h *ProductHandler) GetComments(c *gin.Context) {
	productID := c.Param("id")
	if _, ok := h.catalog.Product(productID); !ok {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, h.catalog.ProductComments(productID))
}

// POST /products/:id/comments
func (h *ProductHandler) AddComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.productService.Comment(c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCommented),
		"comment": comment,
	})
}

// POST /products/:id/rating
func (h *ProductHandler) RateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req RateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Rate(c.Request.Context(), c.Param("id"), req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductRated),
		"product": ProductView{Product: product, Discount: product.Discount()},
	})
}

// GET /products/:id/rating
func (h *ProductHandler) GetMyRating(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID := c.Param("id")
	if _, ok := h.catalog.Product(productID); !ok {
		utils.NotFoundResponse(c, "product")
		return
	}

	rating, found := h.catalog.UserRating(productID, userID)
	if !found {
		utils.SuccessResponse(c, gin.H{"rating": nil})
		return
	}
	utils.SuccessResponse(c, gin.H{"rating": rating})
}

// POST /products/:id/referral
func (h *ProductHandler) ShareReferralLink(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	product, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "product")
		return
	}
	h.notifications.Success(i18n.KeyLinkCopied)

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyLinkCopied),
		"referral_code": product.ReferralCode,
		"referral_link": product.ReferralLink(h.baseURL),
	})
}
