// internal/models/product.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string           `json:"id"`
	TraderID      string           `json:"trader_id"`
	TraderName    string           `json:"trader_name"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Stock         int              `json:"stock"`
	Sold          int              `json:"sold"`
	Rating        float64          `json:"rating"`
	RatingCount   int              `json:"rating_count"`
	ReferralCode  string           `json:"referral_code"`
	CreatedAt     time.Time        `json:"created_at"`
	IsPromoted    bool             `json:"is_promoted"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		out.OriginalPrice = &op
	}
	return out
}

// ReferralLink builds the shareable attribution link for the product.
func (p Product) ReferralLink(baseURL string) string {
	return fmt.Sprintf("%s/product/%s?ref=%s", strings.TrimRight(baseURL, "/"), p.ID, p.ReferralCode)
}

// Discount is the percentage off the original price, or zero.
func (p Product) Discount() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || p.OriginalPrice.LessThanOrEqual(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

// ProductInput carries the fields a trader supplies; the catalog assigns the rest.
type ProductInput struct {
	TraderID      string
	TraderName    string
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Images        []string
	Category      string
	Stock         int
	IsPromoted    bool
}

// ProductUpdate is a partial edit. Identity, referral code, rating and
// creation time are not editable.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Images        []string
	Category      *string
	Stock         *int
	IsPromoted    *bool
}

func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		op := *u.OriginalPrice
		p.OriginalPrice = &op
	}
	if u.Images != nil {
		p.Images = append([]string(nil), u.Images...)
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.IsPromoted != nil {
		p.IsPromoted = *u.IsPromoted
	}
}

var Categories = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Sports",
	"Books",
	"Beauty",
}
