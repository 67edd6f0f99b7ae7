package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:50;not null;index" json:"category"`
	Emoji       string          `gorm:"size:10" json:"emoji"`
	InStock     bool            `gorm:"not null" json:"inStock"`
	Popularity  int             `gorm:"not null;default:0" json:"popularity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
