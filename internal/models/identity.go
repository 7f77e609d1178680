// internal/models/identity.go
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Account is the shape shared by every identity variant.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is a tagged variant over Shopper, Trader and Admin. The set is
// closed; consumers switch on the concrete type.
type Identity interface {
	Role() Role
	Profile() Account
	isIdentity()
}

type Shopper struct {
	Account
}

type Trader struct {
	Account
	ShopName        string `json:"shop_name"`
	ShopDescription string `json:"shop_description"`
	Verified        bool   `json:"verified"`
	TotalSales      int    `json:"total_sales"`
	TotalProducts   int    `json:"total_products"`
}

type Admin struct {
	Account
}

func (Shopper) Role() Role { return RoleShopper }
func (Trader) Role() Role  { return RoleTrader }
func (Admin) Role() Role   { return RoleAdmin }

func (s Shopper) Profile() Account { return s.Account }
func (t Trader) Profile() Account  { return t.Account }
func (a Admin) Profile() Account   { return a.Account }

func (Shopper) isIdentity() {}
func (Trader) isIdentity()  {}
func (Admin) isIdentity()   {}

func (s Shopper) MarshalJSON() ([]byte, error) {
	type shopper Shopper
	return json.Marshal(struct {
		Role Role `json:"role"`
		shopper
	}{RoleShopper, shopper(s)})
}

func (t Trader) MarshalJSON() ([]byte, error) {
	type trader Trader
	return json.Marshal(struct {
		Role Role `json:"role"`
		trader
	}{RoleTrader, trader(t)})
}

func (a Admin) MarshalJSON() ([]byte, error) {
	type admin Admin
	return json.Marshal(struct {
		Role Role `json:"role"`
		admin
	}{RoleAdmin, admin(a)})
}

// DecodeIdentity reads the role discriminant and decodes the matching
// variant. A JSON null decodes to a nil Identity.
func DecodeIdentity(data []byte) (Identity, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var head struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	switch head.Role {
	case RoleShopper, "user":
		var s Shopper
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode shopper: %w", err)
		}
		return s, nil
	case RoleTrader:
		var t Trader
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("decode trader: %w", err)
		}
		return t, nil
	case RoleAdmin:
		var a Admin
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode admin: %w", err)
		}
		return a, nil
	}
	return nil, fmt.Errorf("decode identity: unknown role %q", head.Role)
}

// IdentityUpdate is a partial profile edit. Nil fields are left untouched;
// shop fields only apply to traders.
type IdentityUpdate struct {
	Name            *string `json:"name,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	ShopName        *string `json:"shop_name,omitempty"`
	ShopDescription *string `json:"shop_description,omitempty"`
}

func (u IdentityUpdate) Apply(id Identity) Identity {
	switch v := id.(type) {
	case Shopper:
		u.applyAccount(&v.Account)
		return v
	case Trader:
		u.applyAccount(&v.Account)
		if u.ShopName != nil {
			v.ShopName = *u.ShopName
		}
		if u.ShopDescription != nil {
			v.ShopDescription = *u.ShopDescription
		}
		return v
	case Admin:
		u.applyAccount(&v.Account)
		return v
	case nil:
		return nil
	}
	panic(fmt.Sprintf("models: unhandled identity variant %T", id))
}

func (u IdentityUpdate) applyAccount(a *Account) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Avatar != nil {
		a.Avatar = *u.Avatar
	}
}
