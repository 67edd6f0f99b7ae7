package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Promotion struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	Code           string              `gorm:"size:20;uniqueIndex;not null" json:"code"` // always upper case
	Description    string              `gorm:"type:text" json:"description"`
	DiscountType   DiscountType        `gorm:"size:20;not null" json:"discountType"`
	DiscountValue  decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	MinOrderAmount decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"minOrderAmount"`
	MaxDiscount    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"maxDiscount"` // percentage cap
	UsageLimit     *int                `json:"usageLimit"`
	UsedCount      int                 `gorm:"not null;default:0" json:"usedCount"`
	IsActive       bool                `gorm:"not null" json:"isActive"`
	CreatedAt      time.Time           `json:"createdAt"`
	ExpiresAt      *time.Time          `json:"expiresAt"`
}

// NormalizeCode makes code lookups case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired: a promotion is still usable at exactly its expiry instant.
func (p *Promotion) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

func (p *Promotion) IsUsageExceeded() bool {
	return p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit
}

func (p *Promotion) IsValid(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now) && !p.IsUsageExceeded()
}

// InvalidReason explains why IsValid is false, or returns "".
func (p *Promotion) InvalidReason(now time.Time) string {
	switch {
	case !p.IsActive:
		return "This coupon is no longer active"
	case p.IsExpired(now):
		return "This coupon has expired"
	case p.IsUsageExceeded():
		return "This coupon has reached its usage limit"
	}
	return ""
}

func (p *Promotion) MeetsMinimum(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.MinOrderAmount)
}

// CalculateDiscount never exceeds the subtotal and is zero for an unusable promotion.
func (p *Promotion) CalculateDiscount(subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if !p.IsValid(now) || !p.MeetsMinimum(subtotal) || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch p.DiscountType {
	case DiscountPercentage:
		d = subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		if p.MaxDiscount.Valid && d.GreaterThan(p.MaxDiscount.Decimal) {
			d = p.MaxDiscount.Decimal
		}
	case DiscountFixed:
		d = p.DiscountValue
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(d, subtotal)
}

// Available promotions are shown on the checkout screen.
func (p *Promotion) Available(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now)
}
