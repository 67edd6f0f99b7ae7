package entity

import "github.com/shopspring/decimal"

// OrderItem snapshots a cart line at checkout; later menu edits do not touch it.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"orderId"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Name       string          `gorm:"size:100;not null" json:"name"`
	Emoji      string          `gorm:"size:10" json:"emoji,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
}
