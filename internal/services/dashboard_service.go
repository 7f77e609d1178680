// internal/services/dashboard_service.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/store"
)

type TraderStats struct {
	TotalProducts int             `json:"total_products"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ItemsSold     int             `json:"items_sold"`
	AverageRating float64         `json:"average_rating"`
	Promoted      int             `json:"promoted"`
	OutOfStock    int             `json:"out_of_stock"`
}

type AdminStats struct {
	TotalShoppers      int                        `json:"total_shoppers"`
	TotalTraders       int                        `json:"total_traders"`
	VerifiedTraders    int                        `json:"verified_traders"`
	TotalProducts      int                        `json:"total_products"`
	TotalOrders        int                        `json:"total_orders"`
	OrderRevenue       decimal.Decimal            `json:"order_revenue"`
	OrdersByStatus     map[models.OrderStatus]int `json:"orders_by_status"`
	ProductsByCategory map[string]int             `json:"products_by_category"`
}

type DashboardService struct {
	sess *store.Session
}

func NewDashboardService(sess *store.Session) *DashboardService {
	return &DashboardService{sess: sess}
}

// TraderStats summarizes a trader's listings. Revenue is price x sold over
// the current catalog; the average only counts rated products.
func (s *DashboardService) TraderStats(traderID string) TraderStats {
	stats := TraderStats{TotalRevenue: decimal.Zero}

	ratingSum := decimal.Zero
	rated := 0
	for _, p := range s.sess.Catalog.TraderProducts(traderID) {
		stats.TotalProducts++
		stats.ItemsSold += p.Sold
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Sold))))
		if p.IsPromoted {
			stats.Promoted++
		}
		if p.Stock == 0 {
			stats.OutOfStock++
		}
		if p.RatingCount > 0 {
			ratingSum = ratingSum.Add(decimal.NewFromFloat(p.Rating))
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum.Div(decimal.NewFromInt(int64(rated))).Round(1).InexactFloat64()
	}
	return stats
}

func (s *DashboardService) AdminStats() AdminStats {
	stats := AdminStats{
		OrderRevenue:       decimal.Zero,
		OrdersByStatus:     make(map[models.OrderStatus]int),
		ProductsByCategory: make(map[string]int),
	}

	stats.TotalShoppers = len(s.sess.Identity.Shoppers())
	traders := s.sess.Identity.Traders()
	stats.TotalTraders = len(traders)
	for _, t := range traders {
		if t.Verified {
			stats.VerifiedTraders++
		}
	}

	products := s.sess.Catalog.Products()
	stats.TotalProducts = len(products)
	for _, p := range products {
		stats.ProductsByCategory[p.Category]++
	}

	orders := s.sess.Catalog.Orders()
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.Status != models.OrderStatusCancelled {
			stats.OrderRevenue = stats.OrderRevenue.Add(o.Total)
		}
	}
	return stats
}
