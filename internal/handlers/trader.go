// internal/handlers/trader.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type TraderHandler struct {
	catalog          *store.CatalogStore
	productService   *services.ProductService
	dashboardService *services.DashboardService
}

func NewTraderHandler(catalog *store.CatalogStore, productService *services.ProductService, dashboardService *services.DashboardService) *TraderHandler {
	return &TraderHandler{
		catalog:          catalog,
		productService:   productService,
		dashboardService: dashboardService,
	}
}

// GET /trader/products
func (h *TraderHandler) GetMyProducts(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	products := newProductViews(h.catalog.TraderProducts(userID))
	utils.PaginatedResponse(c, utils.Paginate(products, params))
}

// POST /trader/products
func (h *TraderHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": ProductView{Product: product, Discount: product.Discount()},
	})
}

// PUT /trader/products/:id
func (h *TraderHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": ProductView{Product: product, Discount: product.Discount()},
	})
}

// DELETE /trader/products/:id
func (h *TraderHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /trader/stats
func (h *TraderHandler) GetStats(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": h.dashboardService.TraderStats(userID),
	})
}
