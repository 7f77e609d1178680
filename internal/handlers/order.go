// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type OrderHandler struct {
	catalog *store.CatalogStore
}

func NewOrderHandler(catalog *store.CatalogStore) *OrderHandler {
	return &OrderHandler{
		catalog: catalog,
	}
}

// GET /orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	utils.PaginatedResponse(c, utils.Paginate(h.catalog.UserOrders(userID), params))
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	for _, order := range h.catalog.UserOrders(userID) {
		if order.ID == c.Param("id") {
			utils.SuccessResponse(c, order)
			return
		}
	}
	utils.NotFoundResponse(c, "order")
}
