package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoyaltyKind string

const (
	LoyaltyEarn   LoyaltyKind = "earn"
	LoyaltyRedeem LoyaltyKind = "redeem"
)

// LoyaltyTransaction is one line of a user's points history.
type LoyaltyTransaction struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	UserID  uint        `gorm:"not null;index" json:"userId"`
	Kind    LoyaltyKind `gorm:"size:10;not null" json:"kind"`
	Points  int         `gorm:"not null" json:"points"`
	Balance int         `gorm:"not null" json:"balance"` // balance after this entry

	// redeem: currency value of the points; earn: order total
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	OrderID   *uint     `gorm:"index" json:"orderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
