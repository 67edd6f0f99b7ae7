package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const MaxCartQuantity = 10

// CartItem is one line of a registered user's cart, unique per (user, menu item).
type CartItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"userId"`
	MenuItemID uint `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menuItemId"`

	MenuItem MenuItem `json:"menuItem"` // preload for pricing

	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Total needs MenuItem preloaded.
func (ci CartItem) Total() decimal.Decimal {
	return ci.MenuItem.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CapQuantity bounds a positive quantity at MaxCartQuantity.
func CapQuantity(q int) int {
	if q > MaxCartQuantity {
		return MaxCartQuantity
	}
	return q
}
