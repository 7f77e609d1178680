// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type VerifyTraderRequest struct {
	Verified bool `json:"verified"`
}

type AdminHandler struct {
	adminService     *services.AdminService
	dashboardService *services.DashboardService
	catalog          *store.CatalogStore
}

func NewAdminHandler(adminService *services.AdminService, dashboardService *services.DashboardService, catalog *store.CatalogStore) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		dashboardService: dashboardService,
		catalog:          catalog,
	}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"stats": h.dashboardService.AdminStats(),
	})
}

// GET /admin/shoppers
func (h *AdminHandler) GetShoppers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	shoppers := h.adminService.GetShoppers(services.AdminUserFilter{
		Search: c.Query("search"),
	})

	utils.PaginatedResponse(c, utils.Paginate(shoppers, params))
}

// GET /admin/traders
func (h *AdminHandler) GetTraders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	traders := h.adminService.GetTraders(services.AdminUserFilter{
		Search: c.Query("search"),
	})

	utils.PaginatedResponse(c, utils.Paginate(traders, params))
}

// PUT /admin/traders/:id/verification
func (h *AdminHandler) VerifyTrader(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req VerifyTraderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminService.SetTraderVerified(c.Param("id"), req.Verified); err != nil {
		respondError(c, err)
		return
	}

	key := i18n.KeyTraderVerified
	if !req.Verified {
		key = i18n.KeyTraderUnverified
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, key),
	})
}

// GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products := h.catalog.Search(store.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		TraderID: c.Query("trader_id"),
		Sort:     store.SortNewest,
	})

	utils.PaginatedResponse(c, utils.Paginate(newProductViews(products), params))
}

// DELETE /admin/products/:id
func (h *AdminHandler) RemoveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.adminService.RemoveProduct(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.AdminOrderFilter{
		UserID: c.Query("user_id"),
	}

	if status := models.OrderStatus(c.Query("status")); status.Valid() {
		filter.Status = status
	}

	orders := h.adminService.GetOrders(filter)
	utils.PaginatedResponse(c, utils.Paginate(orders, params))
}

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminService.UpdateOrderStatus(c.Param("id"), models.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
	})
}
