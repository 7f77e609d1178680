// internal/models/common.go
package models

import (
	"fmt"
	"strings"
)

// Enums
type Role string

const (
	RoleShopper Role = "shopper"
	RoleTrader  Role = "trader"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleShopper, RoleTrader, RoleAdmin:
		return true
	}
	return false
}

// ParseRole accepts the role names used on the wire. "user" is the legacy
// name for a shopper.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shopper", "user":
		return RoleShopper, nil
	case "trader":
		return RoleTrader, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)
