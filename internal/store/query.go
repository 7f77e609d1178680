// internal/store/query.go
package store

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/javajoker/marketplace/internal/models"
)

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortNewest    SortOrder = "newest"
)

// AllCategories disables the category filter.
const AllCategories = "All"

func (o SortOrder) Valid() bool {
	switch o {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return true
	}
	return false
}

// ProductQuery filters and orders the catalog. Zero values mean no filter.
type ProductQuery struct {
	Search   string
	Category string
	TraderID string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortOrder
}

func (q ProductQuery) matches(p models.Product) bool {
	if q.TraderID != "" && p.TraderID != q.TraderID {
		return false
	}
	if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.TraderName), term)
}

// Search returns copies of the matching products. Ties keep catalog order.
func (s *CatalogStore) Search(q ProductQuery) []models.Product {
	s.mu.RLock()
	out := []models.Product{}
	for _, p := range s.state.Products {
		if q.matches(p) {
			out = append(out, p.Clone())
		}
	}
	s.mu.RUnlock()

	var less func(a, b models.Product) bool
	switch q.Sort {
	case SortPriceLow:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortRating:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b models.Product) bool { return a.IsPromoted && !b.IsPromoted }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Featured returns up to limit promoted products in catalog order. A limit
// of zero or below returns all of them.
func (s *CatalogStore) Featured(limit int) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for _, p := range s.state.Products {
		if limit > 0 && len(out) == limit {
			break
		}
		if p.IsPromoted {
			out = append(out, p.Clone())
		}
	}
	return out
}

// TraderProducts returns the trader's listings in catalog order.
func (s *CatalogStore) TraderProducts(traderID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for _, p := range s.state.Products {
		if p.TraderID == traderID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories lists the fixed categories followed by any others in use.
func (s *CatalogStore) Categories() []string {
	out := append([]string(nil), models.Categories...)
	seen := make(map[string]bool, len(out))
	for _, c := range out {
		seen[c] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
