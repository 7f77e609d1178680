// internal/store/seed.go
package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/models"
)

// Seed is the mock data a fresh session starts from. It is used only for
// blobs that have never been saved.
type Seed struct {
	Shoppers []models.Shopper
	Traders  []models.Trader
	Products []models.Product
	Comments []models.Comment
	Ratings  []models.Rating
	Orders   []models.Order
}

func (s Seed) catalog() catalogState {
	state := catalogState{
		Products: make([]models.Product, len(s.Products)),
		Comments: append([]models.Comment(nil), s.Comments...),
		Ratings:  append([]models.Rating(nil), s.Ratings...),
		Orders:   make([]models.Order, len(s.Orders)),
	}
	for i, p := range s.Products {
		state.Products[i] = p.Clone()
	}
	for i, o := range s.Orders {
		state.Orders[i] = o.Clone()
	}
	return state
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 9, 0, 0, 0, time.UTC)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// DefaultSeed returns the demo marketplace: three traders, two shoppers and
// a small catalog with comments, ratings and orders.
func DefaultSeed() Seed {
	shoppers := []models.Shopper{
		{Account: models.Account{
			ID:        "user-1",
			Email:     "john@example.com",
			Name:      "John Doe",
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=john",
			CreatedAt: day(2024, time.January, 15),
		}},
		{Account: models.Account{
			ID:        "user-2",
			Email:     "jane@example.com",
			Name:      "Jane Smith",
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=jane",
			CreatedAt: day(2024, time.February, 20),
		}},
	}

	traders := []models.Trader{
		{
			Account: models.Account{
				ID:        "trader-1",
				Email:     "alex@techstore.com",
				Name:      "Alex Chen",
				Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=alex",
				CreatedAt: day(2023, time.June, 1),
			},
			ShopName:        "TechStore Pro",
			ShopDescription: "Premium electronics and gadgets",
			Verified:        true,
			TotalSales:      1250,
			TotalProducts:   3,
		},
		{
			Account: models.Account{
				ID:        "trader-2",
				Email:     "sarah@fashionhub.com",
				Name:      "Sarah Miller",
				Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=sarah",
				CreatedAt: day(2023, time.August, 12),
			},
			ShopName:        "Fashion Hub",
			ShopDescription: "Trendy clothing and accessories",
			Verified:        true,
			TotalSales:      890,
			TotalProducts:   3,
		},
		{
			Account: models.Account{
				ID:        "trader-3",
				Email:     "mike@homegoods.com",
				Name:      "Mike Johnson",
				Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=mike",
				CreatedAt: day(2024, time.March, 5),
			},
			ShopName:        "Home Goods Co",
			ShopDescription: "Everything for your home",
			TotalSales:      120,
			TotalProducts:   2,
		},
	}

	products := []models.Product{
		{
			ID:            "product-1",
			TraderID:      "trader-1",
			TraderName:    "TechStore Pro",
			Name:          "Wireless Noise-Cancelling Headphones",
			Description:   "Over-ear headphones with active noise cancellation and 30-hour battery life.",
			Price:         price("249.99"),
			OriginalPrice: pricePtr("299.99"),
			Images:        []string{"https://images.unsplash.com/photo-1505740420928-5e560c06d30e"},
			Category:      "Electronics",
			Stock:         45,
			Sold:          230,
			ReferralCode:  "TEC-A1B2C3D4",
			CreatedAt:     day(2024, time.January, 10),
			IsPromoted:    true,
		},
		{
			ID:           "product-2",
			TraderID:     "trader-1",
			TraderName:   "TechStore Pro",
			Name:         "Smart Watch Series 5",
			Description:  "Fitness tracking, heart-rate monitoring and a bright always-on display.",
			Price:        price("199.00"),
			Images:       []string{"https://images.unsplash.com/photo-1523275335684-37898b6baf30"},
			Category:     "Electronics",
			Stock:        80,
			Sold:         145,
			ReferralCode: "TEC-E5F6G7H8",
			CreatedAt:    day(2024, time.February, 2),
		},
		{
			ID:            "product-3",
			TraderID:      "trader-1",
			TraderName:    "TechStore Pro",
			Name:          "Portable Bluetooth Speaker",
			Description:   "Waterproof speaker with deep bass and 12 hours of playback.",
			Price:         price("59.99"),
			OriginalPrice: pricePtr("79.99"),
			Images:        []string{"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1"},
			Category:      "Electronics",
			Stock:         120,
			Sold:          310,
			ReferralCode:  "TEC-J9K0L1M2",
			CreatedAt:     day(2024, time.March, 18),
			IsPromoted:    true,
		},
		{
			ID:           "product-4",
			TraderID:     "trader-2",
			TraderName:   "Fashion Hub",
			Name:         "Classic Leather Jacket",
			Description:  "Genuine leather jacket with a tailored fit.",
			Price:        price("179.00"),
			Images:       []string{"https://images.unsplash.com/photo-1551028719-00167b16eac5"},
			Category:     "Fashion",
			Stock:        25,
			Sold:         64,
			ReferralCode: "FAS-N3P4Q5R6",
			CreatedAt:    day(2024, time.January, 28),
			IsPromoted:   true,
		},
		{
			ID:           "product-5",
			TraderID:     "trader-2",
			TraderName:   "Fashion Hub",
			Name:         "Canvas Sneakers",
			Description:  "Lightweight everyday sneakers in six colours.",
			Price:        price("49.50"),
			Images:       []string{"https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77"},
			Category:     "Fashion",
			Stock:        200,
			Sold:         420,
			ReferralCode: "FAS-S7T8U9V0",
			CreatedAt:    day(2024, time.April, 3),
		},
		{
			ID:           "product-6",
			TraderID:     "trader-2",
			TraderName:   "Fashion Hub",
			Name:         "Silk Scarf",
			Description:  "Hand-printed silk scarf.",
			Price:        price("35.00"),
			Images:       []string{"https://images.unsplash.com/photo-1601924994987-69e26d50dc26"},
			Category:     "Beauty",
			Stock:        60,
			Sold:         38,
			ReferralCode: "FAS-W1X2Y3Z4",
			CreatedAt:    day(2024, time.April, 22),
		},
		{
			ID:           "product-7",
			TraderID:     "trader-3",
			TraderName:   "Home Goods Co",
			Name:         "Ceramic Plant Pot Set",
			Description:  "Set of three minimalist ceramic pots with drainage trays.",
			Price:        price("42.00"),
			Images:       []string{"https://images.unsplash.com/photo-1485955900006-10f4d324d411"},
			Category:     "Home & Garden",
			Stock:        35,
			Sold:         12,
			ReferralCode: "HOM-B5C6D7E8",
			CreatedAt:    day(2024, time.May, 9),
		},
		{
			ID:           "product-8",
			TraderID:     "trader-3",
			TraderName:   "Home Goods Co",
			Name:         "Yoga Mat",
			Description:  "Non-slip yoga mat with carrying strap.",
			Price:        price("29.99"),
			Images:       []string{"https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f"},
			Category:     "Sports",
			Stock:        0,
			Sold:         75,
			ReferralCode: "HOM-F9G0H1J2",
			CreatedAt:    day(2024, time.May, 30),
		},
	}

	comments := []models.Comment{
		{
			ID:         "comment-1",
			ProductID:  "product-1",
			UserID:     "user-1",
			UserName:   "John Doe",
			UserAvatar: shoppers[0].Avatar,
			Content:    "Amazing sound quality and the noise cancellation works great on flights.",
			CreatedAt:  day(2024, time.March, 1),
		},
		{
			ID:         "comment-2",
			ProductID:  "product-1",
			UserID:     "user-2",
			UserName:   "Jane Smith",
			UserAvatar: shoppers[1].Avatar,
			Content:    "Comfortable for long sessions. Battery lasts as advertised.",
			CreatedAt:  day(2024, time.March, 6),
		},
		{
			ID:         "comment-3",
			ProductID:  "product-4",
			UserID:     "user-2",
			UserName:   "Jane Smith",
			UserAvatar: shoppers[1].Avatar,
			Content:    "Fits perfectly. Runs slightly large.",
			CreatedAt:  day(2024, time.April, 11),
		},
	}

	ratings := []models.Rating{
		{ID: "rating-1", ProductID: "product-1", UserID: "user-1", Value: 5, CreatedAt: day(2024, time.March, 1)},
		{ID: "rating-2", ProductID: "product-1", UserID: "user-2", Value: 4, CreatedAt: day(2024, time.March, 6)},
		{ID: "rating-3", ProductID: "product-2", UserID: "user-1", Value: 4, CreatedAt: day(2024, time.March, 12)},
		{ID: "rating-4", ProductID: "product-3", UserID: "user-2", Value: 5, CreatedAt: day(2024, time.April, 2)},
		{ID: "rating-5", ProductID: "product-4", UserID: "user-2", Value: 4, CreatedAt: day(2024, time.April, 11)},
		{ID: "rating-6", ProductID: "product-5", UserID: "user-1", Value: 3, CreatedAt: day(2024, time.April, 20)},
		{ID: "rating-7", ProductID: "product-5", UserID: "user-2", Value: 4, CreatedAt: day(2024, time.April, 25)},
	}

	orders := []models.Order{
		{
			ID:     "order-1",
			UserID: "user-1",
			Items: []models.CartLine{
				{Product: products[0], Quantity: 1},
			},
			Total:     price("249.99"),
			Status:    models.OrderStatusDelivered,
			CreatedAt: day(2024, time.February, 25),
		},
		{
			ID:     "order-2",
			UserID: "user-1",
			Items: []models.CartLine{
				{Product: products[4], Quantity: 2},
				{Product: products[2], Quantity: 1},
			},
			Total:     price("158.99"),
			Status:    models.OrderStatusShipped,
			CreatedAt: day(2024, time.May, 2),
		},
	}

	return Seed{
		Shoppers: shoppers,
		Traders:  traders,
		Products: products,
		Comments: comments,
		Ratings:  ratings,
		Orders:   orders,
	}
}
