// internal/models/order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) Clone() CartLine {
	return CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
}

// Order is a snapshot taken at checkout. Its lines hold copies of the
// products, so later catalog edits do not reach it.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = make([]CartLine, len(o.Items))
	for i, l := range o.Items {
		out.Items[i] = l.Clone()
	}
	return out
}

type OrderInput struct {
	UserID string
	Items  []CartLine
	Total  decimal.Decimal
	Status OrderStatus
}

type Comment struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
