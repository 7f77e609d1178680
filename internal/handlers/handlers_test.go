// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/middleware"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/persistence"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type HandlerTestSuite struct {
	suite.Suite
	sess   *store.Session
	router *gin.Engine
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	n := 0
	sess, err := store.Open(context.Background(), store.Options{
		Backend: persistence.NewMemoryBackend(),
		Identity: store.IdentityOptions{
			AdminEmail:    "admin@marketplace.com",
			AdminPassword: "admin123",
			DemoEmails: map[models.Role]string{
				models.RoleShopper: "john@example.com",
				models.RoleTrader:  "alex@techstore.com",
			},
		},
		Seed:  store.DefaultSeed(),
		Clock: func() time.Time { return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	suite.Require().NoError(err)
	suite.sess = sess

	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Session:  config.SessionConfig{DeletePolicy: config.DeletePolicyRetain},
		Frontend: config.FrontendConfig{BaseURL: "https://shop.example.com"},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	events := services.LogPublisher{}
	notifications := services.NewNotificationService("en", 0)
	authService := services.NewAuthService(sess, cfg, notifications)
	accountService := services.NewAccountService(sess, notifications, events, cfg.Session.DeletePolicy)
	productService := services.NewProductService(sess, notifications, events)
	checkoutService := services.NewCheckoutService(sess, notifications, events, false)
	dashboardService := services.NewDashboardService(sess)
	adminService := services.NewAdminService(sess, notifications)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(accountService)
	productHandler := NewProductHandler(sess.Catalog, productService, notifications, cfg.Frontend.BaseURL)
	cartHandler := NewCartHandler(sess.Cart, productService, checkoutService, notifications)
	orderHandler := NewOrderHandler(sess.Catalog)
	traderHandler := NewTraderHandler(sess.Catalog, productService, dashboardService)
	adminHandler := NewAdminHandler(adminService, dashboardService, sess.Catalog)
	notificationHandler := NewNotificationHandler(notifications)

	sessionRequired := middleware.SessionRequired(authService)

	r := gin.New()
	r.Use(middleware.I18nMiddleware("en"))

	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/demo", authHandler.DemoLogin)
	r.POST("/auth/admin/login", authHandler.AdminLogin)
	r.POST("/auth/logout", sessionRequired, authHandler.Logout)
	r.GET("/auth/me", sessionRequired, userHandler.GetProfile)
	r.PUT("/users/profile", sessionRequired, userHandler.UpdateProfile)
	r.DELETE("/users/account", sessionRequired, userHandler.DeleteAccount)

	r.GET("/products", productHandler.GetProducts)
	r.GET("/products/featured", productHandler.GetFeaturedProducts)
	r.GET("/products/categories", productHandler.GetCategories)
	r.GET("/products/:id", middleware.SessionOptional(authService), productHandler.GetProduct)
	r.GET("/products/:id/comments", productHandler.GetComments)
	r.POST("/products/:id/referral", productHandler.ShareReferralLink)
	r.POST("/products/:id/comments", sessionRequired, productHandler.AddComment)
	r.POST("/products/:id/rating", sessionRequired, productHandler.RateProduct)
	r.GET("/products/:id/rating", sessionRequired, productHandler.GetMyRating)

	cart := r.Group("/cart", sessionRequired, middleware.RoleRequired(models.RoleShopper))
	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:product_id", cartHandler.UpdateItem)
	cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
	cart.POST("/checkout", cartHandler.Checkout)

	r.GET("/orders", sessionRequired, orderHandler.GetMyOrders)
	r.GET("/orders/:id", sessionRequired, orderHandler.GetOrder)

	trader := r.Group("/trader", sessionRequired, middleware.RoleRequired(models.RoleTrader))
	trader.GET("/stats", traderHandler.GetStats)
	trader.GET("/products", traderHandler.GetMyProducts)
	trader.POST("/products", traderHandler.CreateProduct)
	trader.PUT("/products/:id", traderHandler.UpdateProduct)
	trader.DELETE("/products/:id", traderHandler.DeleteProduct)

	r.GET("/notifications", notificationHandler.GetNotifications)
	r.DELETE("/notifications", notificationHandler.ClearNotifications)

	admin := r.Group("/admin", sessionRequired, middleware.AdminRequired())
	admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
	admin.GET("/shoppers", adminHandler.GetShoppers)
	admin.GET("/traders", adminHandler.GetTraders)
	admin.PUT("/traders/:id/verification", adminHandler.VerifyTrader)
	admin.GET("/products", adminHandler.GetProducts)
	admin.DELETE("/products/:id", adminHandler.RemoveProduct)
	admin.GET("/orders", adminHandler.GetOrders)
	admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

	suite.router = r
}

func (suite *HandlerTestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response apiResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func (suite *HandlerTestSuite) login(email, role string) string {
	w, response := suite.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "role": role})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &data))
	return data.Token
}

func (suite *HandlerTestSuite) TestLoginAndProfile() {
	token := suite.login("john@example.com", "shopper")

	w, response := suite.do(http.MethodGet, "/auth/me", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var data struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &data))
	suite.Equal("user-1", data.User.ID)
	suite.Equal("shopper", data.User.Role)

	w, _ = suite.do(http.MethodPut, "/users/profile", token, gin.H{"name": "Johnny"})
	suite.Equal(http.StatusOK, w.Code)
	current, _ := suite.sess.Identity.Current()
	suite.Equal("Johnny", current.Profile().Name)

	w, _ = suite.do(http.MethodPost, "/auth/logout", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	// the token outlives the session it was issued for
	w, response = suite.do(http.MethodGet, "/auth/me", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", response.Error.Code)
}

func (suite *HandlerTestSuite) TestLoginErrors() {
	w, response := suite.do(http.MethodPost, "/auth/login", "", gin.H{"email": "nope", "role": "shopper"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response.Error.Code)

	w, _ = suite.do(http.MethodPost, "/auth/demo", "", gin.H{"role": "admin"})
	suite.Equal(http.StatusForbidden, w.Code)

	w, _ = suite.do(http.MethodPost, "/auth/admin/login", "", gin.H{"email": "admin@marketplace.com", "password": "guess"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.do(http.MethodPost, "/auth/admin/login", "", gin.H{"email": "admin@marketplace.com", "password": "admin123"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestBrowseProducts() {
	w, response := suite.do(http.MethodGet, "/products?search=SPEAKER", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, response.Meta.Pagination.Total)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	w, response = suite.do(http.MethodGet, "/products?page=922337203685477581", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(8, response.Meta.Pagination.Total)
	suite.JSONEq("[]", string(response.Data))

	w, response = suite.do(http.MethodGet, "/products?category=Fashion&sort=price-low", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	var products []ProductView
	suite.Require().NoError(json.Unmarshal(response.Data, &products))
	suite.Require().Len(products, 2)
	suite.Equal("product-5", products[0].ID)

	w, response = suite.do(http.MethodGet, "/products/featured?limit=2", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(response.Data, &products))
	suite.Len(products, 2)
	suite.Equal(17, products[0].Discount)

	w, response = suite.do(http.MethodGet, "/products/product-1", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	var detail struct {
		Comments     []models.Comment `json:"comments"`
		ReferralLink string           `json:"referral_link"`
		MyRating     *models.Rating   `json:"my_rating"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &detail))
	suite.Len(detail.Comments, 2)
	suite.Equal("https://shop.example.com/product/product-1?ref=TEC-A1B2C3D4", detail.ReferralLink)
	suite.Nil(detail.MyRating)

	token := suite.login("john@example.com", "shopper")
	_, response = suite.do(http.MethodGet, "/products/product-1", token, nil)
	suite.Require().NoError(json.Unmarshal(response.Data, &detail))
	suite.Require().NotNil(detail.MyRating)
	suite.Equal(5, detail.MyRating.Value)

	w, _ = suite.do(http.MethodGet, "/products/missing", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestRateAndComment() {
	w, _ := suite.do(http.MethodPost, "/products/product-2/rating", "", gin.H{"rating": 5})
	suite.Equal(http.StatusUnauthorized, w.Code)

	token := suite.login("jane@example.com", "shopper")

	w, _ = suite.do(http.MethodPost, "/products/product-2/rating", token, gin.H{"rating": 9})
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPost, "/products/product-2/rating", token, gin.H{"rating": 5})
	suite.Equal(http.StatusOK, w.Code)
	p, _ := suite.sess.Catalog.Product("product-2")
	suite.Equal(4.5, p.Rating)
	suite.Equal(2, p.RatingCount)

	w, response := suite.do(http.MethodGet, "/products/product-2/rating", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	var mine struct {
		Rating *models.Rating `json:"rating"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &mine))
	suite.Require().NotNil(mine.Rating)
	suite.Equal(5, mine.Rating.Value)

	w, _ = suite.do(http.MethodPost, "/products/product-2/comments", token, gin.H{"content": "Love it"})
	suite.Equal(http.StatusCreated, w.Code)
	suite.Len(suite.sess.Catalog.ProductComments("product-2"), 1)
}

func (suite *HandlerTestSuite) TestCartAndCheckout() {
	token := suite.login("john@example.com", "shopper")

	w, _ := suite.do(http.MethodPost, "/cart/checkout", token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPost, "/cart/items", token, gin.H{"product_id": "product-5", "quantity": 2})
	suite.Equal(http.StatusCreated, w.Code)
	w, _ = suite.do(http.MethodPost, "/cart/items", token, gin.H{"product_id": "product-8"})
	suite.Equal(http.StatusBadRequest, w.Code)
	w, _ = suite.do(http.MethodPost, "/cart/items", token, gin.H{"product_id": "product-6", "quantity": 1})
	suite.Equal(http.StatusCreated, w.Code)

	w, _ = suite.do(http.MethodPut, "/cart/items/product-6", token, gin.H{"quantity": 0})
	suite.Equal(http.StatusOK, w.Code)
	w, _ = suite.do(http.MethodDelete, "/cart/items/product-6", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w, response := suite.do(http.MethodGet, "/cart", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	var quote struct {
		Count    int    `json:"count"`
		Subtotal string `json:"subtotal"`
		Total    string `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &quote))
	suite.Equal(2, quote.Count)
	suite.Equal("99", quote.Subtotal)
	suite.Equal("108.99", quote.Total)

	w, _ = suite.do(http.MethodPost, "/cart/checkout", token, nil)
	suite.Equal(http.StatusCreated, w.Code)
	suite.Empty(suite.sess.Cart.Items())

	w, response = suite.do(http.MethodGet, "/orders", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(3, response.Meta.Pagination.Total)

	w, _ = suite.do(http.MethodGet, "/orders/order-1", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	traderToken := suite.login("alex@techstore.com", "trader")
	w, _ = suite.do(http.MethodGet, "/cart", traderToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestTraderProducts() {
	token := suite.login("alex@techstore.com", "trader")

	w, _ := suite.do(http.MethodPost, "/trader/products", token, gin.H{
		"name":        "USB-C Hub",
		"description": "Seven ports in an aluminium shell.",
		"price":       "39.90",
		"category":    "Electronics",
		"stock":       10,
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w, response := suite.do(http.MethodGet, "/trader/products", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(4, response.Meta.Pagination.Total)

	w, _ = suite.do(http.MethodPost, "/trader/products", token, gin.H{"name": "X"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPut, "/trader/products/product-4", token, gin.H{"stock": 1})
	suite.Equal(http.StatusForbidden, w.Code)

	w, _ = suite.do(http.MethodDelete, "/trader/products/product-3", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, _ = suite.do(http.MethodGet, "/trader/stats", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	shopperToken := suite.login("john@example.com", "shopper")
	w, _ = suite.do(http.MethodGet, "/trader/stats", shopperToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestAdminRoutes() {
	shopperToken := suite.login("john@example.com", "shopper")
	w, _ := suite.do(http.MethodGet, "/admin/dashboard/stats", shopperToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w, response := suite.do(http.MethodPost, "/auth/admin/login", "", gin.H{"email": "admin@marketplace.com", "password": "admin123"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var data struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(response.Data, &data))
	token := data.Token

	w, _ = suite.do(http.MethodGet, "/admin/dashboard/stats", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, response = suite.do(http.MethodGet, "/admin/traders?search=fashion", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, response.Meta.Pagination.Total)

	w, _ = suite.do(http.MethodPut, "/admin/traders/trader-3/verification", token, gin.H{"verified": true})
	suite.Equal(http.StatusOK, w.Code)
	w, _ = suite.do(http.MethodPut, "/admin/traders/trader-9/verification", token, gin.H{"verified": true})
	suite.Equal(http.StatusNotFound, w.Code)

	w, _ = suite.do(http.MethodPut, "/admin/orders/order-2/status", token, gin.H{"status": "lost"})
	suite.Equal(http.StatusBadRequest, w.Code)
	w, _ = suite.do(http.MethodPut, "/admin/orders/order-2/status", token, gin.H{"status": "delivered"})
	suite.Equal(http.StatusOK, w.Code)

	w, response = suite.do(http.MethodGet, "/admin/orders?status=delivered", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(2, response.Meta.Pagination.Total)

	w, _ = suite.do(http.MethodDelete, "/admin/products/product-8", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	w, response = suite.do(http.MethodGet, "/admin/products", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(7, response.Meta.Pagination.Total)
}

func (suite *HandlerTestSuite) TestNotifications() {
	suite.login("john@example.com", "shopper")

	w, response := suite.do(http.MethodGet, "/notifications?limit=1", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	var notifications []services.Notification
	suite.Require().NoError(json.Unmarshal(response.Data, &notifications))
	suite.Require().Len(notifications, 1)
	suite.Equal(services.NotificationSuccess, notifications[0].Level)

	w, _ = suite.do(http.MethodDelete, "/notifications", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	_, response = suite.do(http.MethodGet, "/notifications", "", nil)
	suite.JSONEq(`[]`, string(response.Data))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
